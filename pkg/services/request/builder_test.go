package request

import (
	"testing"
	"time"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build_Validation(t *testing.T) {
	tests := []struct {
		name          string
		reportType    domain.ReportType
		year          int
		clientName    string
		expectedField string
		expectedMsg   string
	}{
		{
			name:          "missing report type",
			reportType:    "",
			year:          2024,
			clientName:    "Acme Corporation",
			expectedField: "reportType",
			expectedMsg:   "report type required",
		},
		{
			name:          "empty client name",
			reportType:    domain.ReportTypeProfitLoss,
			year:          2024,
			clientName:    "",
			expectedField: "clientName",
			expectedMsg:   "client name required",
		},
		{
			name:          "whitespace only client name",
			reportType:    domain.ReportTypeProfitLoss,
			year:          2024,
			clientName:    "   ",
			expectedField: "clientName",
			expectedMsg:   "client name required",
		},
		{
			name:          "single character client name",
			reportType:    domain.ReportTypeBalanceSheet,
			year:          2024,
			clientName:    "A",
			expectedField: "clientName",
			expectedMsg:   "client name too short",
		},
		{
			name:          "padded single character client name",
			reportType:    domain.ReportTypeCashFlow,
			year:          2024,
			clientName:    "  B  ",
			expectedField: "clientName",
			expectedMsg:   "client name too short",
		},
		{
			name:          "missing type reported before missing name",
			reportType:    "",
			year:          2024,
			clientName:    "",
			expectedField: "reportType",
			expectedMsg:   "report type required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewBuilder()
			_, err := builder.Build(tt.reportType, tt.year, tt.clientName)

			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.expectedField, vErr.Field)
			assert.Equal(t, tt.expectedMsg, vErr.Message)
			assert.Equal(t, tt.expectedMsg, vErr.Error())
		})
	}
}

func TestBuilder_Build_Success(t *testing.T) {
	pinned := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	builder := NewBuilder(
		WithClock(func() time.Time { return pinned }),
		WithSuffixSource(func() string { return "a1b2c3d4" }),
	)

	req, err := builder.Build(domain.ReportTypeProfitLoss, 2025, "  Acme Corporation  ")
	require.NoError(t, err)

	assert.Equal(t, domain.ReportTypeProfitLoss, req.Type)
	assert.Equal(t, 2025, req.Year)
	assert.Equal(t, "Acme Corporation", req.ClientName)
	assert.Equal(t, pinned, req.Timestamp)
	assert.Equal(t, "REQ-1741944413000-a1b2c3d4", req.RequestID)
}

func TestBuilder_Build_TwoCharacterNameAccepted(t *testing.T) {
	builder := NewBuilder()
	req, err := builder.Build(domain.ReportTypeBalanceSheet, 2023, "Ab")
	require.NoError(t, err)
	assert.Equal(t, "Ab", req.ClientName)
}

func TestBuilder_Build_FreshIDsPerRequest(t *testing.T) {
	builder := NewBuilder()

	first, err := builder.Build(domain.ReportTypeCashFlow, 2024, "Globex")
	require.NoError(t, err)
	second, err := builder.Build(domain.ReportTypeCashFlow, 2024, "Globex")
	require.NoError(t, err)

	assert.NotEqual(t, first.RequestID, second.RequestID)
	assert.Regexp(t, `^REQ-\d+-[0-9a-f]{8}$`, first.RequestID)
	assert.Regexp(t, `^REQ-\d+-[0-9a-f]{8}$`, second.RequestID)
}
