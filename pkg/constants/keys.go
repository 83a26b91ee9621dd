package constants

type ContextKey string

const (
	DBKey     ContextKey = "db"
	TxKey     ContextKey = "tx"
	LoggerKey ContextKey = "logger"
)
