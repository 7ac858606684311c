package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/illarion/passworks/cmd"
	"github.com/illarion/passworks/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	settings := cmd.LoadSettings()
	logging.Setup(settings.LogLevel, settings.LogFormat, os.Stderr)

	switch os.Args[1] {
	case "init":
		runInit(settings, os.Args[2:])
	case "hash":
		runHash(ctx, settings, os.Args[2:])
	case "verify":
		runVerify(ctx, settings, os.Args[2:])
	case "set":
		runSet(ctx, settings, os.Args[2:])
	case "check":
		runCheck(ctx, settings, os.Args[2:])
	case "rm":
		runRm(ctx, settings, os.Args[2:])
	case "ls":
		runLs(ctx, settings, os.Args[2:])
	case "inspect":
		runInspect(settings, os.Args[2:])
	case "status":
		runStatus(ctx, settings, os.Args[2:])
	case "compact":
		runCompact(settings, os.Args[2:])
	case "completion":
		runCompletion(os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// configFlags registers the hashing configuration flags on fs. The returned
// function reports only the flags that were set, keyed by config field.
func configFlags(fs *flag.FlagSet) func() map[string]string {
	fields := map[string]*string{
		"strategy":   fs.String("strategy", "", "Hashing strategy"),
		"algorithm":  fs.String("algorithm", "", "Digest algorithm"),
		"iterations": fs.String("iterations", "", "Iteration count"),
		"keyLength":  fs.String("key-length", "", "Key length in bytes"),
	}

	return func() map[string]string {
		set := make(map[string]string)
		for field, value := range fields {
			if *value != "" {
				set[field] = *value
			}
		}
		return set
	}
}

func parseFlags(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func oneArg(fs *flag.FlagSet, usage string) string {
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s\n", usage)
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runInit(settings cmd.Settings, args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	flags := configFlags(fs)
	parseFlags(fs, args)

	cmd.Init(settings, flags())
}

func runHash(ctx context.Context, settings cmd.Settings, args []string) {
	fs := flag.NewFlagSet("hash", flag.ExitOnError)
	raw := fs.Bool("raw", false, "Print only the hash")
	flags := configFlags(fs)
	parseFlags(fs, args)

	cmd.Hash(ctx, settings, flags(), *raw)
}

func runVerify(ctx context.Context, settings cmd.Settings, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	flags := configFlags(fs)
	parseFlags(fs, args)

	cmd.Verify(ctx, settings, flags(), oneArg(fs, "passworks verify <record>"))
}

func runSet(ctx context.Context, settings cmd.Settings, args []string) {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	flags := configFlags(fs)
	parseFlags(fs, args)

	cmd.Set(ctx, settings, flags(), oneArg(fs, "passworks set <user>"))
}

func runCheck(ctx context.Context, settings cmd.Settings, args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	rehash := fs.Bool("rehash", false, "Replace a matching record that uses outdated parameters")
	flags := configFlags(fs)
	parseFlags(fs, args)

	cmd.Check(ctx, settings, flags(), oneArg(fs, "passworks check [--rehash] <user>"), *rehash)
}

func runRm(ctx context.Context, settings cmd.Settings, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Remove(ctx, settings, fs.Args())
}

func runLs(ctx context.Context, settings cmd.Settings, args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.List(ctx, settings)
}

func runInspect(settings cmd.Settings, args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	flags := configFlags(fs)
	parseFlags(fs, args)

	cmd.Inspect(settings, flags(), oneArg(fs, "passworks inspect <record>"))
}

func runStatus(ctx context.Context, settings cmd.Settings, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	flags := configFlags(fs)
	parseFlags(fs, args)

	cmd.Status(ctx, settings, flags())
}

func runCompact(settings cmd.Settings, args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Compact(settings)
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: passworks completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("passworks - Salted, strategy-tagged password hashing")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  passworks <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init        Create a .passworks database and save the configuration")
	fmt.Println("  hash        Hash a secret and print the record")
	fmt.Println("  verify      Verify a secret against a record")
	fmt.Println("  set         Hash a secret and store it for a user")
	fmt.Println("  check       Verify a secret against a stored record")
	fmt.Println("  rm          Remove stored records")
	fmt.Println("  ls          List stored records")
	fmt.Println("  inspect     Show the fields of a record")
	fmt.Println("  status      Show configuration and database status")
	fmt.Println("  compact     Compact database to reclaim disk space")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  passworks init --iterations 200000   # Create database")
	fmt.Println("  passworks set alice                  # Store a record for alice")
	fmt.Println("  passworks check alice                # Verify alice's secret")
	fmt.Println("  passworks hash --strategy argon2id --iterations 3 --key-length 32")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  PASSWORKS_SECRET         Secret to use instead of prompting")
	fmt.Println("  PASSWORKS_BACKEND        bolt (default), keyring or redis")
	fmt.Println("  PASSWORKS_DB             Database path (default .passworks)")
	fmt.Println("  PASSWORKS_REDIS_ADDR     Redis address (default localhost:6379)")
	fmt.Println("  PASSWORKS_LOG_LEVEL      debug, info, warn (default) or error")
	fmt.Println()
	fmt.Println("Use 'passworks help <command>' for more information about a command.")
}

func printConfigFlags() {
	fmt.Println("Configuration flags:")
	fmt.Println("  --strategy <name>     Hashing strategy (default pbkdf2)")
	fmt.Println("  --algorithm <name>    Digest algorithm (default sha256)")
	fmt.Println("  --iterations <n>      Iteration count (default 128000; argon2id time cost, at most 16)")
	fmt.Println("  --key-length <n>      Key length in bytes (default 64)")
	fmt.Println()
	fmt.Println("Flags override PASSWORKS_STRATEGY, PASSWORKS_ALGORITHM, PASSWORKS_ITERATIONS")
	fmt.Println("and PASSWORKS_KEY_LENGTH, which override the configuration saved by 'init'.")
}

func printCommandHelp(command string) {
	switch command {
	case "init":
		fmt.Println("passworks init [config flags]")
		fmt.Println()
		fmt.Println("Creates a .passworks database in the current directory (or at PASSWORKS_DB)")
		fmt.Println("and saves the hashing configuration used for new records.")
		fmt.Println()
		printConfigFlags()
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  passworks init")
		fmt.Println("  passworks init --strategy argon2id --iterations 3 --key-length 32")
	case "hash":
		fmt.Println("passworks hash [--raw] [config flags]")
		fmt.Println()
		fmt.Println("Reads a secret (PASSWORKS_SECRET or prompt) and prints the record")
		fmt.Println("strategy:algorithm:iterations:keyLength:salt:hash.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --raw    Print only the hash")
		fmt.Println()
		printConfigFlags()
	case "verify":
		fmt.Println("passworks verify <record>")
		fmt.Println()
		fmt.Println("Reads a secret and checks it against the record.")
		fmt.Println("Exits with status 1 when the secret does not match.")
		fmt.Println("Prints a notice when the record uses outdated parameters.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  passworks verify \"$(cat record.txt)\"")
	case "set":
		fmt.Println("passworks set [config flags] <user>")
		fmt.Println()
		fmt.Println("Hashes a new secret and stores the record for user on the")
		fmt.Println("selected backend, replacing any previous record.")
	case "check":
		fmt.Println("passworks check [--rehash] [config flags] <user>")
		fmt.Println()
		fmt.Println("Verifies a secret against the stored record for user.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --rehash    Replace a matching record that uses outdated parameters")
	case "rm":
		fmt.Println("passworks rm <user> [user...]")
		fmt.Println()
		fmt.Println("Removes stored records. The bolt database is compacted afterwards.")
	case "ls":
		fmt.Println("passworks ls")
		fmt.Println()
		fmt.Println("Lists users with a stored record (bolt and redis backends).")
	case "inspect":
		fmt.Println("passworks inspect [config flags] <record>")
		fmt.Println()
		fmt.Println("Shows the fields of a record and how they differ from the")
		fmt.Println("current configuration. Does not require a secret.")
	case "status":
		fmt.Println("passworks status [config flags]")
		fmt.Println()
		fmt.Println("Shows the effective configuration, registered strategies,")
		fmt.Println("supported algorithms, record counts and git status of the database.")
		fmt.Println()
		fmt.Println("Does not require a secret.")
	case "compact":
		fmt.Println("passworks compact")
		fmt.Println()
		fmt.Println("Compacts the .passworks database to reclaim unused disk space.")
		fmt.Println("This is automatically done after 'rm',")
		fmt.Println("but can be run manually if needed.")
	case "completion":
		fmt.Println("passworks completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(passworks completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(passworks completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  passworks completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
