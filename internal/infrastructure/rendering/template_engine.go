package rendering

import (
	"bytes"
	"context"
	"html/template"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders statement HTML templates with business data.
// It uses Go's html/template package with custom formatting functions.
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates a new template engine with the statement
// formatting functions registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{}

	e.funcMap = template.FuncMap{
		// Money formatting
		"formatMoney":    formatMoney,
		"formatMoneyRaw": formatMoneyRaw,
		"amountInWords":  amountInWords,

		// Date formatting
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,

		// Number formatting
		"formatDecimal": formatDecimal,

		// String utilities
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": titleCase,
		"trim":  strings.TrimSpace,

		// Display helpers
		"statusText": statusText,
		"shortUUID":  shortUUID,
		"now":        time.Now,
	}

	return e
}

// RenderString renders a template string with the provided data
func (e *TemplateEngine) RenderString(ctx context.Context, name, content string, data interface{}) (string, error) {
	if content == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}

	return buf.String(), nil
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

// =============================================================================
// Template Functions - Money Formatting
// =============================================================================

// formatMoney formats a decimal value as rupees with symbol
// Example: 1234.56 -> "Rs. 1,234.56"
func formatMoney(v interface{}) string {
	return "Rs. " + formatMoneyRaw(v)
}

// formatMoneyRaw formats a decimal value as currency without symbol
// Example: 1234.56 -> "1,234.56"
func formatMoneyRaw(v interface{}) string {
	d := toDecimal(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	// Add thousand separators
	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	return sign + result.String() + "." + decPart
}

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven",
		"Eight", "Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen",
		"Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty",
		"Seventy", "Eighty", "Ninety"}
	scaleWords = []string{"", "Thousand", "Million", "Billion", "Trillion"}
)

// amountInWords converts a money value to the written form used on
// statements and cheques.
// Example: 1234.56 -> "Rupees One Thousand Two Hundred Thirty Four and Cents Fifty Six Only"
func amountInWords(v interface{}) string {
	d := toDecimal(v)

	sign := ""
	if d.IsNegative() {
		sign = "Minus "
		d = d.Abs()
	}

	totalCents := d.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	rupees := totalCents / 100
	cents := totalCents % 100

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("Rupees ")
	b.WriteString(numberToWords(rupees))
	if cents > 0 {
		b.WriteString(" and Cents ")
		b.WriteString(numberToWords(cents))
	}
	b.WriteString(" Only")

	return b.String()
}

// numberToWords writes a non-negative integer in English words
func numberToWords(n int64) string {
	if n == 0 {
		return "Zero"
	}

	// Split into groups of three digits, least significant first
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == 0 {
			continue
		}
		words := threeDigitWords(int(groups[i]))
		if i > 0 && i < len(scaleWords) {
			words += " " + scaleWords[i]
		}
		parts = append(parts, words)
	}

	return strings.Join(parts, " ")
}

// threeDigitWords writes 1..999 in English words
func threeDigitWords(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100], "Hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		parts = append(parts, tensWords[n/10])
		if n%10 > 0 {
			parts = append(parts, onesWords[n%10])
		}
	case n > 0:
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}

// =============================================================================
// Template Functions - Date and Number Formatting
// =============================================================================

// formatDate formats a time value as date string
// Example: time.Now() -> "2025-08-01"
func formatDate(v interface{}) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// formatDateTime formats a time value as datetime string
// Example: time.Now() -> "2025-08-01 14:30:00"
func formatDateTime(v interface{}) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// formatDecimal formats a decimal with specified precision
func formatDecimal(v interface{}, precision int) string {
	d := toDecimal(v)
	return d.StringFixed(int32(precision))
}

// =============================================================================
// Template Functions - Display Helpers
// =============================================================================

// titleCase converts string to title case using proper Unicode handling
func titleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}

// statusText converts receivable status codes to display text
func statusText(status string) string {
	statusMap := map[string]string{
		// Invoice settlement
		"pending":        "Pending",
		"partially_paid": "Partially Paid",
		"paid":           "Paid",
		// Collections
		"allocated": "Allocated",
		"completed": "Completed",
		// Cheques
		"cleared":  "Cleared",
		"returned": "Returned",
		// Sales returns
		"approved":  "Approved",
		"rejected":  "Rejected",
		"processed": "Processed",
		// Statements
		"rendering": "Rendering",
		"failed":    "Failed",
	}
	if text, ok := statusMap[status]; ok {
		return text
	}
	return titleCase(strings.ReplaceAll(status, "_", " "))
}

// shortUUID returns the first segment of a UUID for display
func shortUUID(id uuid.UUID) string {
	s := id.String()
	if len(s) >= 8 {
		return s[:8]
	}
	return s
}

// =============================================================================
// Helper Functions
// =============================================================================

// toDecimal converts various types to decimal.Decimal
func toDecimal(v interface{}) decimal.Decimal {
	switch val := v.(type) {
	case decimal.Decimal:
		return val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		return *val
	case int:
		return decimal.NewFromInt(int64(val))
	case int32:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case float32:
		return decimal.NewFromFloat(float64(val))
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// toTime converts various types to time.Time
func toTime(v interface{}) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val == nil {
			return time.Time{}
		}
		return *val
	case string:
		formats := []string{
			time.RFC3339,
			"2006-01-02 15:04:05",
			"2006-01-02",
		}
		for _, f := range formats {
			if t, err := time.Parse(f, val); err == nil {
				return t
			}
		}
		return time.Time{}
	case int64:
		return time.Unix(val, 0)
	default:
		return time.Time{}
	}
}
