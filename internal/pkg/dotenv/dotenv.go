package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const DefaultFile = ".env"

// флаги командной строки перекрывают переменные окружения и .env
var flagEnv = []struct {
	name  string
	env   string
	usage string
}{
	{name: "port", env: "PORT", usage: "HTTP server port"},
	{name: "grpc-port", env: "GRPC_PORT", usage: "gRPC server port, empty disables gRPC"},
	{name: "storage", env: "STORAGE_BACKEND", usage: "storage backend: postgres or memory"},
	{name: "locks", env: "LOCK_BACKEND", usage: "lock backend: memory or redis"},
}

// Load читает .env, если он есть, и применяет флаги из os.Args.
// Уже выставленные переменные окружения .env не перезаписывает.
func Load() (loaded bool, err error) {
	return load(flag.CommandLine, os.Args[1:], DefaultFile)
}

func load(fset *flag.FlagSet, args []string, files ...string) (bool, error) {
	loaded := false
	for _, file := range files {
		err := godotenv.Load(file)
		switch {
		case err == nil:
			loaded = true
		case errors.Is(err, fs.ErrNotExist):
		default:
			return loaded, fmt.Errorf("load %s: %w", file, err)
		}
	}

	values := make(map[string]*string, len(flagEnv))
	for _, f := range flagEnv {
		values[f.env] = fset.String(f.name, "", f.usage+" (overrides "+f.env+")")
	}
	if err := fset.Parse(args); err != nil {
		return loaded, fmt.Errorf("parse flags: %w", err)
	}

	for env, value := range values {
		if *value == "" {
			continue
		}
		if err := os.Setenv(env, *value); err != nil {
			return loaded, fmt.Errorf("failed to set %s environment variable: %w", env, err)
		}
	}
	return loaded, nil
}
