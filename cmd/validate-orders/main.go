package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/validate"
)

// CLI-приложение для валидации файлов с пачками заказов.
// JSON — массив заказов (тот же конверт, что у POST /orders/batch),
// JSONL — по одному заказу на строку.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	flag.Parse()

	format := validate.InputFormat(*formatStr)
	path := *inputPath

	// stdin вариант: считаем, что jsonl
	if path == "" {
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
		path = "/dev/stdin"
	}

	summary, err := validate.ValidateFile(path, format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
}
