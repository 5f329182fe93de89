package main

import (
	"crypto/md5"
	"fmt"
	"os"

	"github.com/tplink-oss/safeloader/board"
	"github.com/tplink-oss/safeloader/driver"
	"github.com/tplink-oss/safeloader/image"
	"github.com/tplink-oss/safeloader/internal/slerrors"
)

func readFile(path string) []byte {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf(" ! Input file '%s' does not exist!\n", path)
			os.Exit(1)
		}
		checkMsg(slerrors.Iof(err, "statting %s", path), "verifying file")
	}
	if info.IsDir() {
		fmt.Printf(" ! '%s' is a directory, not a file!\n", path)
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		checkMsg(slerrors.Iof(err, "reading %s", path), "reading input file")
	}
	return data
}

func runInfo(path string) {
	data := readFile(path)

	report, err := driver.Info(data)
	checkMsg(err, "parsing image")

	fmt.Printf(" - Dialect: %s\n", report.Dialect)
	if report.VendorBanner != "" {
		fmt.Printf(" - Vendor banner: %s\n", report.VendorBanner)
	}
	fmt.Println(" - Embedded partitions:")
	for _, p := range report.Partitions {
		fmt.Printf("   %-16s base 0x%05x size 0x%05x  fingerprint %016x", p.Name, p.Base, p.Size, p.Fingerprint)
		if p.Description != "" {
			fmt.Printf("  %s", p.Description)
		}
		fmt.Println()
	}
	if len(report.FlashTable) > 0 {
		fmt.Println(" - Flash partition table:")
		for _, e := range report.FlashTable {
			fmt.Printf("   %-16s base 0x%05x size 0x%05x\n", e.Name, e.Base, e.Size)
		}
	}
}

func runExtract(path, dir string) {
	data := readFile(path)

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		fmt.Printf(" ! '%s' is not a directory!\n", dir)
		os.Exit(1)
	}

	fmt.Println(" - Extracting embedded partitions")
	err = driver.Extract(data, dir)
	checkMsg(err, "extracting image")
	fmt.Printf(" - Finished! Files written to '%s'.\n", dir)
}

func runConvert(inputPath, outputPath string) {
	data := readFile(inputPath)

	fmt.Println(" - Converting to sysupgrade layout")
	out, err := driver.Convert(data)
	checkMsg(err, "converting image")

	writeOutput(outputPath, out)
}

func runBuild(boardID, kernelPath, rootfsPath, outputPath string, revision uint32, jffs2EOF, sysupgrade bool) {
	profile, ok := board.Find(boardID)
	if !ok {
		fmt.Printf(" ! Unknown board id '%s'!\n", boardID)
		os.Exit(1)
	}

	kernel := readFile(kernelPath)
	rootfs := readFile(rootfsPath)

	buildTime, err := sourceDateEpoch()
	checkMsg(err, "resolving build time")

	mode := image.ModeFactory
	if sysupgrade {
		mode = image.ModeSysupgrade
	}

	fmt.Println(" - Assembling image")
	out, err := image.Build(profile, image.Options{
		Kernel:    kernel,
		Rootfs:    rootfs,
		Mode:      mode,
		JFFS2EOF:  jffs2EOF,
		Revision:  revision,
		BuildTime: buildTime,
		MD5:       md5.Sum,
	})
	checkMsg(err, "assembling image")

	writeOutput(outputPath, out)
}

func writeOutput(path string, data []byte) {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		checkMsg(slerrors.Iof(err, "creating %s", path), "creating output file")
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		checkMsg(slerrors.Iof(err, "writing %s", path), "writing output file")
	}

	fmt.Printf(" - Finished! Output is '%s'.\n", path)
}
