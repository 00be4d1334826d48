// Command devtoken prints a signed bearer token for local testing of the API.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"promanager/internal/auth"
	"promanager/internal/config"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:], config.LoadConfig()))
}

func run(out, errOut io.Writer, args []string, cfg *config.Config) int {
	flagSet := flag.NewFlagSet("devtoken", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	userID := flagSet.StringP("user", "u", "", "User id to put in the token subject")
	ttl := flagSet.Duration("ttl", cfg.JWTTTL, "Token lifetime")
	secret := flagSet.String("secret", cfg.JWTSecret, "Signing secret [default: $JWT_SECRET]")
	help := flagSet.BoolP("help", "h", false, "Show help")

	if err := flagSet.Parse(args); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	if *help {
		printHelp(out)
		return 0
	}

	if *userID == "" {
		fmt.Fprintln(errOut, "error: --user is required")
		return 1
	}
	if *ttl <= 0 {
		fmt.Fprintln(errOut, "error: --ttl must be positive")
		return 1
	}

	tokens, err := auth.NewTokenManager(*secret, *ttl)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	token, err := tokens.IssueWithTTL(*userID, *ttl)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	fmt.Fprintln(out, token)
	return 0
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Usage: devtoken --user=<id> [options]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Print a bearer token accepted by the task API.")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Options:")
	fmt.Fprintln(out, "  -u, --user=<id>      Owner id the token authenticates")
	fmt.Fprintln(out, "  --ttl=<duration>     Token lifetime [default: $JWT_TTL or 168h]")
	fmt.Fprintln(out, "  --secret=<secret>    Signing secret [default: $JWT_SECRET]")
	fmt.Fprintf(out, "\nExample: devtoken --user 42 --ttl %s\n", time.Hour)
}
