package rendering

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplateEngine(t *testing.T) {
	engine := NewTemplateEngine()
	assert.NotNil(t, engine)
	assert.NotNil(t, engine.funcMap)
}

func TestTemplateEngine_GetFuncMap(t *testing.T) {
	engine := NewTemplateEngine()
	funcMap := engine.GetFuncMap()

	assert.NotNil(t, funcMap["formatMoney"])
	assert.NotNil(t, funcMap["formatDate"])
	assert.NotNil(t, funcMap["amountInWords"])
	assert.NotNil(t, funcMap["statusText"])
	assert.NotNil(t, funcMap["title"])
}

func TestTemplateEngine_RenderString(t *testing.T) {
	engine := NewTemplateEngine()
	ctx := context.Background()

	t.Run("renders simple template", func(t *testing.T) {
		result, err := engine.RenderString(ctx, "test",
			`<p>Balance: {{ formatMoney .Balance }}</p>`,
			map[string]interface{}{"Balance": decimal.NewFromFloat(12345.67)})

		require.NoError(t, err)
		assert.Contains(t, result, "Rs. 12,345.67")
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := engine.RenderString(ctx, "test", "", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "template content is empty")
	})

	t.Run("rejects invalid syntax", func(t *testing.T) {
		_, err := engine.RenderString(ctx, "test", `{{ .Unclosed `, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse template")
	})

	t.Run("reports execution failures", func(t *testing.T) {
		// A struct without the referenced field fails at execution time;
		// a map would silently yield an empty value instead.
		_, err := engine.RenderString(ctx, "test", `{{ .Outstanding }}`,
			struct{ Total decimal.Decimal }{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute template")
	})
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		name     string
		input    decimal.Decimal
		expected string
	}{
		{"simple", decimal.NewFromFloat(1234.56), "Rs. 1,234.56"},
		{"millions", decimal.NewFromFloat(1234567.89), "Rs. 1,234,567.89"},
		{"no decimals", decimal.NewFromInt(500), "Rs. 500.00"},
		{"small", decimal.NewFromFloat(0.5), "Rs. 0.50"},
		{"zero", decimal.Zero, "Rs. 0.00"},
		{"negative", decimal.NewFromFloat(-1234.56), "Rs. -1,234.56"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, formatMoney(tc.input))
		})
	}
}

func TestFormatMoneyRaw_AcceptsVariousTypes(t *testing.T) {
	assert.Equal(t, "1,000.00", formatMoneyRaw(int64(1000)))
	assert.Equal(t, "1,000.50", formatMoneyRaw("1000.5"))
	assert.Equal(t, "0.00", formatMoneyRaw(nil))
}

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		name     string
		input    decimal.Decimal
		expected string
	}{
		{"zero", decimal.Zero, "Rupees Zero Only"},
		{"whole rupees", decimal.NewFromInt(500), "Rupees Five Hundred Only"},
		{"with cents", decimal.NewFromFloat(1234.56),
			"Rupees One Thousand Two Hundred Thirty Four and Cents Fifty Six Only"},
		{"teens", decimal.NewFromInt(15), "Rupees Fifteen Only"},
		{"tens boundary", decimal.NewFromInt(40), "Rupees Forty Only"},
		{"compound tens", decimal.NewFromInt(99), "Rupees Ninety Nine Only"},
		{"thousands with gap", decimal.NewFromInt(1000005),
			"Rupees One Million Five Only"},
		{"cents only", decimal.NewFromFloat(0.05), "Rupees Zero and Cents Five Only"},
		{"negative", decimal.NewFromFloat(-250.10),
			"Minus Rupees Two Hundred Fifty and Cents Ten Only"},
		{"lakhs scale amount", decimal.NewFromInt(150000),
			"Rupees One Hundred Fifty Thousand Only"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, amountInWords(tc.input))
		})
	}
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Partially Paid", statusText("partially_paid"))
	assert.Equal(t, "Paid", statusText("paid"))
	assert.Equal(t, "Returned", statusText("returned"))
	// Unknown codes are humanized rather than shown raw
	assert.Equal(t, "On Hold", statusText("on_hold"))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, 8, 1, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-08-01", formatDate(ts))
	assert.Equal(t, "2025-08-01 14:30:00", formatDateTime(ts))
	assert.Equal(t, "", formatDate(time.Time{}))
	assert.Equal(t, "2025-08-01", formatDate("2025-08-01"))
}

func TestRenderStatement(t *testing.T) {
	engine := NewTemplateEngine()
	ctx := context.Background()

	data := &StatementData{
		StatementID:               uuid.MustParse("ab12cd34-0000-0000-0000-000000000000"),
		AgencyName:                "Apparel Agency Colombo",
		CustomerName:              "Kandy Textiles",
		CustomerCode:              "SHOP-001",
		AsOfDate:                  time.Date(2025, 8, 1, 23, 59, 59, 0, time.UTC),
		GeneratedAt:               time.Date(2025, 8, 2, 9, 15, 0, 0, time.UTC),
		TotalInvoiced:             decimal.NewFromInt(18000),
		TotalCollected:            decimal.NewFromInt(3000),
		UnrealizedPayments:        decimal.NewFromInt(5000),
		TotalReturns:              decimal.NewFromInt(2000),
		OutstandingAmount:         decimal.NewFromInt(13000),
		OutstandingWithUnrealized: decimal.NewFromInt(8000),
		Invoices: []StatementInvoiceRow{
			{
				InvoiceNumber:     "INV-2025-001",
				Total:             decimal.NewFromInt(10000),
				CollectedAmount:   decimal.NewFromInt(3000),
				ReturnAmount:      decimal.Zero,
				OutstandingAmount: decimal.NewFromInt(7000),
				Status:            "partially_paid",
			},
			{
				InvoiceNumber:     "INV-2025-002",
				Total:             decimal.NewFromInt(8000),
				CollectedAmount:   decimal.Zero,
				ReturnAmount:      decimal.NewFromInt(2000),
				OutstandingAmount: decimal.NewFromInt(6000),
				Status:            "pending",
			},
		},
	}

	html, err := engine.RenderStatement(ctx, data)

	require.NoError(t, err)
	assert.Contains(t, html, "Apparel Agency Colombo")
	assert.Contains(t, html, "Kandy Textiles")
	assert.Contains(t, html, "SHOP-001")
	assert.Contains(t, html, "Statement ab12cd34")
	assert.Contains(t, html, "As at 2025-08-01")
	assert.Contains(t, html, "Rs. 18,000.00")
	assert.Contains(t, html, "Rs. 13,000.00")
	assert.Contains(t, html, "INV-2025-001")
	assert.Contains(t, html, "Partially Paid")
	assert.Contains(t, html, "Rupees Thirteen Thousand Only")
	// No degraded banner for a clean statement
	assert.NotContains(t, html, "could not be read")
}

func TestRenderStatement_Degraded(t *testing.T) {
	engine := NewTemplateEngine()
	ctx := context.Background()

	data := &StatementData{
		StatementID:  uuid.New(),
		AgencyName:   "Apparel Agency Colombo",
		CustomerName: "Kandy Textiles",
		AsOfDate:     time.Date(2025, 8, 1, 23, 59, 59, 0, time.UTC),
		GeneratedAt:  time.Now(),
		Degraded:     true,
		Invoices: []StatementInvoiceRow{
			{InvoiceNumber: "INV-2025-003", Status: "pending", Degraded: true},
		},
	}

	html, err := engine.RenderStatement(ctx, data)

	require.NoError(t, err)
	assert.Contains(t, html, "could not be read")
	assert.Contains(t, html, "INV-2025-003")
}

func TestRenderStatement_NilData(t *testing.T) {
	engine := NewTemplateEngine()

	_, err := engine.RenderStatement(context.Background(), nil)

	assert.Error(t, err)
}

func TestRenderStatement_EmptyInvoiceList(t *testing.T) {
	engine := NewTemplateEngine()

	data := &StatementData{
		StatementID:  uuid.New(),
		AgencyName:   "Apparel Agency Colombo",
		CustomerName: "Kandy Textiles",
		AsOfDate:     time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		GeneratedAt:  time.Now(),
	}

	html, err := engine.RenderStatement(context.Background(), data)

	require.NoError(t, err)
	assert.Contains(t, html, "No invoices on record.")
}
