package db

// Config selects the dialect and carries connection settings. Type is one of
// postgres, mysql, or sqlite; for sqlite only Name (the file path) is read.
// Lifetime and idle time are in seconds; zero leaves the pool default.
type Config struct {
	Type            string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}
