package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"git.sr.ht/~jakintosh/tokengate/internal/config"
	"git.sr.ht/~jakintosh/tokengate/internal/logging"
	"git.sr.ht/~jakintosh/tokengate/internal/service"
	"git.sr.ht/~jakintosh/tokengate/pkg/tokens"
)

const usage = `usage:
  tokenctl issue [-mode m] [-env file]
  tokenctl validate [-env file] <token>
`

var errRejected = errors.New("token rejected")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintf(os.Stderr, "tokenctl: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("missing command")
	}

	switch args[0] {
	case "issue":
		return issue(args[1:], stdout)
	case "validate":
		return validate(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func issue(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("issue", flag.ContinueOnError)
	mode := fs.String("mode", "", "token mode ("+modeList()+")")
	envFile := fs.String("env", "", "env file to load")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, err := newService(*envFile)
	if err != nil {
		return err
	}
	if *mode == "default" {
		*mode = ""
	}
	issued, err := svc.IssueToken(*mode)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, issued.Token)
	return nil
}

func validate(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	envFile := fs.String("env", "", "env file to load")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("validate takes exactly one token")
	}

	cfg, err := loadConfig(*envFile)
	if err != nil {
		return err
	}
	_, validator := tokens.InitServer([]byte(cfg.TokenSecret))

	result, err := validator.Validate(strings.TrimSpace(fs.Arg(0)))
	if err != nil {
		if tErr, ok := tokens.AsError(err); ok {
			fmt.Fprintf(stderr, "rejected: %s\n%s\n", tErr.Error(), tErr.Describe())
			return errRejected
		}
		return err
	}

	out := map[string]any{
		"header":  result.Header,
		"claims":  result.Claims,
		"nesting": result.Nesting,
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func loadConfig(envFile string) (*config.Config, error) {
	if envFile != "" {
		return config.Load(envFile)
	}
	return config.Load()
}

func newService(envFile string) (*service.Service, error) {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return nil, err
	}
	issuer, validator := tokens.InitServer([]byte(cfg.TokenSecret))
	return service.New(nil, issuer, validator,
		service.WithLifetime(cfg.TokenLifetime),
		service.WithExpiredOffset(cfg.ExpiredOffset),
		service.WithLogger(logging.Discard()),
	), nil
}

func modeList() string {
	names := make([]string, 0, len(service.Modes()))
	for _, m := range service.Modes() {
		if m == "" {
			names = append(names, "default")
			continue
		}
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
