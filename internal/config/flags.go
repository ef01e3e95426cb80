package config

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// Flags holds the values of the command-line flags registered by
// [BindFlags]. Values are read after the flag set has been parsed.
type Flags struct {
	httpAddress     NetAddress
	grpcAddress     NetAddress
	databaseDSN     string
	storageDriver   string
	mongoURI        string
	mongoDatabase   string
	jsonConfigPath  string
	tokenSignKey    string
	tokenIssuer     string
	tokenDuration   time.Duration
	requestTimeout  time.Duration
	environment     string
	verificationURL string
	sweepInterval   time.Duration
}

// BindFlags registers all configuration flags on fs.
//
// Flags:
//
//	-a, --address          server address in format [host]:[port]
//	    --grpc-address     grpc health address in format [host]:[port]
//	-d, --database-dsn     postgres DSN
//	    --storage-driver   record store: postgres or mongo
//	    --mongo-uri        mongo connection string
//	    --mongo-database   mongo database name
//	-c, --config           json file path with configs
//	    --token-sign-key   token signing key
//	    --token-issuer     token issuer name
//	    --token-duration   token duration (e.g. "168h")
//	    --request-timeout  request timeout (e.g. "30s")
//	    --environment      deployment environment
//	    --verification-url link placed in verification e-mails
//	    --sweep-interval   expired secret sweep interval
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}

	fs.VarP(&f.httpAddress, "address", "a", "Net address host:port")
	fs.Var(&f.grpcAddress, "grpc-address", "Net grpc health address host:port")
	fs.StringVarP(&f.databaseDSN, "database-dsn", "d", "", "Database DSN")
	fs.StringVar(&f.storageDriver, "storage-driver", "", "Record store driver (postgres|mongo)")
	fs.StringVar(&f.mongoURI, "mongo-uri", "", "MongoDB URI")
	fs.StringVar(&f.mongoDatabase, "mongo-database", "", "MongoDB database name")
	fs.StringVarP(&f.jsonConfigPath, "config", "c", "", "JSON config file path")
	fs.StringVar(&f.tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&f.tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&f.tokenDuration, "token-duration", 0, "Token duration (e.g., 168h)")
	fs.DurationVar(&f.requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&f.environment, "environment", "", "Deployment environment")
	fs.StringVar(&f.verificationURL, "verification-url", "", "Verification link base URL")
	fs.DurationVar(&f.sweepInterval, "sweep-interval", 0, "Expired secrets sweep interval")

	return f
}

func (f *Flags) toConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:    f.tokenSignKey,
			TokenIssuer:     f.tokenIssuer,
			TokenDuration:   f.tokenDuration,
			Environment:     f.environment,
			VerificationURL: f.verificationURL,
		},
		Storage: Storage{
			Driver: f.storageDriver,
			DB: DB{
				DSN: f.databaseDSN,
			},
			Mongo: Mongo{
				URI:      f.mongoURI,
				Database: f.mongoDatabase,
			},
		},
		Server: Server{
			HTTPAddress:    f.httpAddress.String(),
			GRPCAddress:    f.grpcAddress.String(),
			RequestTimeout: f.requestTimeout,
		},
		Workers: Workers{
			SweepInterval: f.sweepInterval,
		},
		JSONFilePath: f.jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
