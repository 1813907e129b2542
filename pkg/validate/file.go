package validate

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// FileSummary — итог проверки файла.
type FileSummary struct {
	Valid   int
	Invalid int
}

func (s FileSummary) String() string {
	return fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid)
}

// ValidateFile — валидирует файл с заказами как JSON-массив или JSONL
// и пишет канонический JSON валидных заказов в writer (по одному на строку).
func ValidateFile(filePath string, format InputFormat, ow io.Writer) (FileSummary, error) {
	// auto по расширению
	if format == FormatAuto {
		switch strings.ToLower(filepath.Ext(filePath)) {
		case ".jsonl":
			format = FormatJSONL
		default:
			// по умолчанию считаем JSON
			format = FormatJSON
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return FileSummary{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(file)
		if err != nil {
			return FileSummary{}, fmt.Errorf("read file: %w", err)
		}
		orders, err := ParseOrdersInput(raw)
		if err != nil {
			return FileSummary{}, err
		}
		return checkOrders(orders, ow)

	case FormatJSONL:
		return validateJSONLStream(file, ow)

	default:
		return FileSummary{}, fmt.Errorf("unsupported format: %s", format)
	}
}

// checkOrders — по-заказная валидация уже распарсенной пачки.
func checkOrders(orders []*domain.Order, ow io.Writer) (FileSummary, error) {
	var sum FileSummary
	for _, order := range orders {
		if err := ValidateOrder(order); err != nil {
			sum.Invalid++
			continue
		}
		sum.Valid++
		if ow != nil {
			canonical, _ := json.Marshal(order)
			if _, err := ow.Write(append(canonical, '\n')); err != nil {
				return sum, fmt.Errorf("write json: %w", err)
			}
		}
	}
	if sum.Valid == 0 {
		return sum, fmt.Errorf("%w: нет ни одного валидного заказа", ErrInvalidOrder)
	}
	return sum, nil
}

// validateJSONLStream — построчная проверка: одна строка = один заказ.
// Пустые строки пропускаются, битые строки считаются невалидными.
func validateJSONLStream(r io.Reader, ow io.Writer) (FileSummary, error) {
	var sum FileSummary

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var order domain.Order
		dec := json.NewDecoder(bytes.NewReader(line))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&order); err != nil {
			sum.Invalid++
			continue
		}
		if err := ValidateOrder(&order); err != nil {
			sum.Invalid++
			continue
		}

		sum.Valid++
		if ow != nil {
			canonical, _ := json.Marshal(&order)
			if _, err := ow.Write(append(canonical, '\n')); err != nil {
				return sum, fmt.Errorf("write json: %w", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("scan: %w", err)
	}
	return sum, nil
}
