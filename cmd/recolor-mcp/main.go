package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/server"
)

// Populated at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		os.Exit(dispatch(os.Args[1], os.Stdout, os.Stderr))
	}

	// stdout carries the protocol; everything logged goes to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("RECOLOR_MCP_LOG_LEVEL") == "debug" {
		log.Printf("image-recolor-mcp %s starting (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if err := server.New().Run(); err != nil {
		log.Fatalf("server terminated: %v", err)
	}
}

// dispatch handles a single command-line argument and returns the process
// exit code. Anything it does not recognize is an error; the server itself
// takes no arguments.
func dispatch(arg string, out, errOut io.Writer) int {
	switch arg {
	case "version", "--version", "-v":
		printVersion(out)
		return 0
	case "help", "--help", "-h":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown argument %q\n\n", arg)
		printUsage(errOut)
		return 2
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "image-recolor-mcp %s\n", Version)
	fmt.Fprintf(w, "  built:  %s\n", BuildTime)
	fmt.Fprintf(w, "  commit: %s\n", GitCommit)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "image-recolor-mcp - MCP server for tolerance-based color replacement")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The server speaks JSON-RPC over stdin/stdout; point your MCP client at")
	fmt.Fprintln(w, "the binary and it exposes the image_* tools. It takes no arguments")
	fmt.Fprintln(w, "beyond the ones below.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  version, --version, -v   Print version information")
	fmt.Fprintln(w, "  help, --help, -h         Print this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  RECOLOR_MCP_LOG_LEVEL=debug   Enable debug logging on stderr")
}
