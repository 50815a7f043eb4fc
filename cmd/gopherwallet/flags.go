package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	version  = "0.1.0"
	progName = "gopherwallet"
	source   = "https://github.com/fonarev/gopherwallet"
)

var usage = func() {
	fmt.Fprintf(flag.CommandLine.Output(), "%s\nSource code:\t%s\nVersion:\t%s\nUsage of %s:\n",
		progName,
		source,
		version,
		progName)
	flag.PrintDefaults()
}

var (
	ErrNotFullIP   = errors.New("given ip address and port incorrect")
	ErrInvalidIP   = errors.New("incorrect ip address")
	ErrInvalidPort = errors.New("incorrect port number")
)

type netAddress struct {
	ipaddr string
	port   int
}

func (n *netAddress) String() string {
	return fmt.Sprintf("%s:%d", n.ipaddr, n.port)
}

func (n *netAddress) Set(value string) error {
	value = strings.TrimPrefix(value, "http://")
	values := strings.Split(value, ":")
	if len(values) != 2 {
		return fmt.Errorf("%w: \"%s\"", ErrNotFullIP, value)
	}
	n.ipaddr = values[0]
	if n.ipaddr == "" {
		return fmt.Errorf("%w: \"%s\"", ErrInvalidIP, values[0])
	}
	var err error
	n.port, err = strconv.Atoi(values[1])
	if err != nil {
		return fmt.Errorf("%w: \"%s\"", ErrInvalidPort, values[1])
	}
	return nil
}

type Flags struct {
	APIAddress  netAddress
	DatabaseDSN string
	RedisAddr   string
	RedisPass   string
	LogLevel    string
	Key         string
}

func (f *Flags) String() string {
	return fmt.Sprintf("APIAddress: %s, "+
		"DatabaseDSN: %s, "+
		"RedisAddr: %s, "+
		"LogLevel: %s",
		f.APIAddress.String(),
		f.DatabaseDSN,
		f.RedisAddr,
		f.LogLevel,
	)
}

var CliOptions = Flags{
	APIAddress: netAddress{
		ipaddr: "localhost",
		port:   8080,
	},
	RedisAddr: "localhost:6379",
	LogLevel:  "info",
}

func parseFlags() error {
	// config.env is optional; env vars below still take effect without it
	if err := godotenv.Load("config.env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load config.env: %w", err)
	}

	flag.Usage = usage
	flag.Var(&CliOptions.APIAddress, "a", "ip and port of server in format <ip>:<port>")
	flag.StringVar(&CliOptions.DatabaseDSN, "d", "", "Database DSN")
	flag.StringVar(&CliOptions.RedisAddr, "r", "localhost:6379", "redis address in format <ip>:<port>")
	flag.StringVar(&CliOptions.LogLevel, "l", "info", "loglevel")
	flag.StringVar(&CliOptions.Key, "k", "TEST123", "JWT signing key")

	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDRESS"); envRunAddr != "" {
		if err := CliOptions.APIAddress.Set(envRunAddr); err != nil {
			return err
		}
	}
	if envDatabaseDSN := os.Getenv("DATABASE_URI"); envDatabaseDSN != "" {
		CliOptions.DatabaseDSN = envDatabaseDSN
	}
	if envRedisAddr := os.Getenv("REDIS_ADDR"); envRedisAddr != "" {
		CliOptions.RedisAddr = envRedisAddr
	}
	if envRedisPass := os.Getenv("REDIS_PASS"); envRedisPass != "" {
		CliOptions.RedisPass = envRedisPass
	}
	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		CliOptions.LogLevel = envLogLevel
	}
	if envSecret := os.Getenv("SECRET"); envSecret != "" {
		CliOptions.Key = envSecret
	}

	if CliOptions.DatabaseDSN == "" {
		return errors.New("database DSN is required")
	}
	return nil
}
