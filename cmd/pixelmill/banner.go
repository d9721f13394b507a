package main

import (
	"fmt"

	"github.com/fatih/color"

	"pixelmill/pkg/optimizer"
)

func printAsciiLogo() {

	fmt.Println()

	color.New(color.FgHiMagenta, color.Bold).Print("PIXEL")
	color.New(color.FgHiCyan, color.Bold).Print("MILL")
	color.New(color.FgHiBlack).Printf(" v%s\n", optimizer.Version)

	color.New(color.FgHiBlack).Println("Image Optimization Pipeline")
}

func printSignature() {
	cyan := color.New(color.FgHiCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite).SprintFunc()

	fmt.Println()
	fmt.Printf("%s : %s\n", cyan("Project    "), white("pixelmill"))
	fmt.Printf("%s : %s\n", cyan("Formats    "), white("jpeg, png, webp (auto picks smallest)"))
	fmt.Println()
}
