package postrge

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		login VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS wallets (
		user_id INTEGER PRIMARY KEY REFERENCES users(id),
		account_number VARCHAR(32) NOT NULL UNIQUE,
		balance NUMERIC(20, 3) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS wallet_transactions (
		id UUID PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		type VARCHAR(16) NOT NULL,
		amount NUMERIC(20, 3) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		counterparty VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_transactions_user
		ON wallet_transactions (user_id, created_at DESC);`,
	`CREATE TABLE IF NOT EXISTS withdrawal_requests (
		id UUID PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		amount NUMERIC(20, 3) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		admin_message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_withdrawal_requests_user
		ON withdrawal_requests (user_id, created_at DESC);`,
}

const (
	insertUserQuery = `INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id;`
	getUserByLogin  = `SELECT id, login, password_hash, is_admin, created_at FROM users WHERE login = $1;`
	getLoginByUID   = `SELECT login FROM users WHERE id = $1;`

	insertWalletQuery = `INSERT INTO wallets (user_id, account_number) VALUES ($1, $2);`

	getSnapshotQuery = `
		SELECT w.balance::text, w.account_number,
			COALESCE((SELECT SUM(r.amount)
				FROM withdrawal_requests r
				WHERE r.user_id = w.user_id AND r.status = 'pending'), 0)::text
		FROM wallets w WHERE w.user_id = $1;`

	getBalanceForUpdateQuery = `SELECT balance::text FROM wallets WHERE user_id = $1 FOR UPDATE;`
	updateBalanceQuery       = `UPDATE wallets SET balance = $1, updated_at = NOW() WHERE user_id = $2;`
	getUIDByAccountQuery     = `SELECT user_id FROM wallets WHERE account_number = $1;`

	insertTransactionQuery = `
		INSERT INTO wallet_transactions (id, user_id, type, amount, description, counterparty, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`
	getTransactionsQuery = `
		SELECT id, type, amount::text, description, counterparty, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2;`

	insertRequestQuery = `
		INSERT INTO withdrawal_requests (id, user_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5);`
	getRequestsByUserQuery = `
		SELECT id, amount::text, status, admin_message, created_at
		FROM withdrawal_requests
		WHERE user_id = $1
		ORDER BY created_at DESC;`
	getRequestForUpdateQuery = `
		SELECT id, user_id, amount::text, status, admin_message, created_at
		FROM withdrawal_requests
		WHERE id = $1 FOR UPDATE;`
	updateRequestStatusQuery = `
		UPDATE withdrawal_requests
		SET status = $1, admin_message = $2, updated_at = NOW()
		WHERE id = $3;`
	getPendingSumQuery = `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM withdrawal_requests
		WHERE user_id = $1 AND status = 'pending';`
)
