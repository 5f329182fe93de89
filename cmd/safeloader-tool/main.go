// Command safeloader-tool builds, inspects, extracts and converts
// SafeLoader firmware images, per spec.md §6.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"
	"github.com/tgulacsi/wrap"

	"github.com/tplink-oss/safeloader/internal/slerrors"
)

const usageBanner = `safeloader-tool builds, inspects, extracts and converts SafeLoader
firmware images for TP-Link-style consumer network devices.

Pick exactly one mode:
  -i FILE                        print info about FILE
  -x FILE -d DIR                 extract FILE's embedded partitions into DIR
  -z FILE -o FILE                convert a vendor image into sysupgrade layout
  -B BOARD -k FILE -r FILE -o FILE [-V rN] [-j] [-S]
                                  build a factory (or, with -S, sysupgrade) image
`

// checkMsg reports a fatal error and exits. The message text already
// carries the OS error description for IoError failures, since every
// slerrors wrap folds cause.Error() into its display string (spec.md §7).
func checkMsg(err error, msg string) {
	if err != nil {
		fmt.Printf(" ! Error %s!\n", msg)
		fmt.Printf(" ! %s\n", err.Error())
		os.Exit(1)
	}
}

func main() {
	var (
		infoPath    string
		extractPath string
		extractDir  string
		convertPath string
		outputPath  string
		board       string
		kernelPath  string
		rootfsPath  string
		revisionArg string
		jffs2EOF    bool
		sysupgrade  bool
		showHelp    bool
	)

	flag.StringVarP(&infoPath, "info", "i", "", "print info about FILE")
	flag.StringVarP(&extractPath, "extract", "x", "", "extract FILE's embedded partitions")
	flag.StringVarP(&extractDir, "dir", "d", "", "directory to extract into")
	flag.StringVarP(&convertPath, "convert", "z", "", "convert a vendor image into sysupgrade layout")
	flag.StringVarP(&outputPath, "output", "o", "", "output file path")
	flag.StringVarP(&board, "board", "B", "", "board id to build for")
	flag.StringVarP(&kernelPath, "kernel", "k", "", "kernel image to embed")
	flag.StringVarP(&rootfsPath, "rootfs", "r", "", "root filesystem image to embed")
	flag.StringVarP(&revisionArg, "revision", "V", "", "build revision, as rN")
	flag.BoolVarP(&jffs2EOF, "jffs2-eof", "j", false, "append the jffs2 end-of-filesystem marker to the rootfs")
	flag.BoolVarP(&sysupgrade, "sysupgrade", "S", false, "build a sysupgrade image instead of factory")
	flag.BoolVarP(&showHelp, "help", "h", false, "show usage")

	flag.ErrHelp = errors.New("")
	flag.Parse()

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	if showHelp || flag.NArg() > 0 && flag.Arg(0) == "help" {
		printUsage(interactive)
		return
	}

	switch {
	case infoPath != "":
		runInfo(infoPath)
	case extractPath != "":
		if extractDir == "" {
			fmt.Println(" ! -x requires -d DIR")
			os.Exit(1)
		}
		runExtract(extractPath, extractDir)
	case convertPath != "":
		if outputPath == "" {
			fmt.Println(" ! -z requires -o FILE")
			os.Exit(1)
		}
		runConvert(convertPath, outputPath)
	case board != "":
		if kernelPath == "" || rootfsPath == "" || outputPath == "" {
			fmt.Println(" ! -B requires -k, -r and -o")
			os.Exit(1)
		}
		revision, err := parseRevision(revisionArg)
		checkMsg(err, "parsing revision")
		runBuild(board, kernelPath, rootfsPath, outputPath, revision, jffs2EOF, sysupgrade)
	default:
		printUsage(interactive)
		os.Exit(1)
	}
}

func printUsage(interactive bool) {
	if interactive {
		fmt.Println(wrap.String(usageBanner, 72))
		return
	}
	fmt.Println("Usage: safeloader-tool {-i file | -x file -d dir | -z file -o file | -B board -k kernel -r rootfs -o file}")
	flag.PrintDefaults()
}

// parseRevision parses a -V argument of the form "rN" into N, per spec.md §6.
func parseRevision(arg string) (uint32, error) {
	if arg == "" {
		return 0, nil
	}
	if !strings.HasPrefix(arg, "r") {
		return 0, slerrors.Invalidf(nil, "revision %q must be of the form rN", arg)
	}
	n, err := strconv.ParseUint(arg[1:], 10, 32)
	if err != nil {
		return 0, slerrors.Invalidf(err, "revision %q must be of the form rN", arg)
	}
	return uint32(n), nil
}

// sourceDateEpoch resolves the replayable build clock from SOURCE_DATE_EPOCH
// (Design Note "Module-level clock"), falling back to the wall clock.
func sourceDateEpoch() (time.Time, error) {
	raw, ok := os.LookupEnv("SOURCE_DATE_EPOCH")
	if !ok || raw == "" {
		return time.Now().UTC(), nil
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, slerrors.Invalidf(err, "SOURCE_DATE_EPOCH %q is not a valid unix timestamp", raw)
	}
	return time.Unix(secs, 0).UTC(), nil
}
