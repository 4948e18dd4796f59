package main

import (
	"github.com/Ameya-bit/vulnerabilties-study/cmd/seccheck/riskyapi"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(riskyapi.NewAnalyzer())
}
