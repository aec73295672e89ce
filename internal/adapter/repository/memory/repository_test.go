package memory

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

const bundleJSON = `{
	"fees": [
		{"carrier": "LH", "taxCode": "YR", "subCode": "I", "seqNo": 100, "amount": "5", "currency": "EUR"},
		{"carrier": "LH", "taxCode": "YQ", "subCode": "I", "seqNo": 300, "amount": 15, "currency": "EUR"},
		{"carrier": "LH", "taxCode": "YQ", "subCode": "F", "seqNo": 200, "amount": 25, "currency": "EUR", "sectorPortionInd": "P"},
		{"carrier": "LH", "taxCode": "YQ", "subCode": "F", "seqNo": 100, "amount": 35, "currency": "EUR", "feeApplInd": "1"},
		{"carrier": "BA", "taxCode": "YQ", "subCode": "F", "seqNo": 10, "percent": "2.5", "currency": "GBP"}
	],
	"nonConcurrence": [
		{"carrier": "LH", "selfAppl": "", "carrierApplTblItemNo": 7}
	],
	"carrierApplication": {
		"7": [{"carrier": "$$", "applInd": ""}, {"carrier": "AA", "applInd": "X"}]
	},
	"carrierFlights": {
		"12": [{"marketingCarrier": "LH", "flt1": 400, "flt2": 499}]
	},
	"zones": [
		{"vendor": "ATP", "zone": "210", "members": [{"type": "N", "code": "DE"}, {"type": "N", "code": "AT"}]}
	],
	"rates": [
		{"currency": "EUR", "perNuc": "0.92", "decimals": 2}
	]
}`

func loadTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := Parse([]byte(bundleJSON))
	require.NoError(t, err)
	return repo
}

func TestRepository_ImplementsInterface(t *testing.T) {
	var _ domain.SurchargeDataSource = (*Repository)(nil)
}

func TestRepository_FeesByCarrier(t *testing.T) {
	repo := loadTestRepository(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		carrier  string
		wantKeys []string
	}{
		{
			name:     "sorted by tax code, sub code and sequence",
			carrier:  "LH",
			wantKeys: []string{"YQF/100", "YQF/200", "YQI/300", "YRI/100"},
		},
		{
			name:     "single record",
			carrier:  "BA",
			wantKeys: []string{"YQF/10"},
		},
		{
			name:    "unknown carrier is empty",
			carrier: "XX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fees, err := repo.FeesByCarrier(ctx, tt.carrier)
			require.NoError(t, err)

			var keys []string
			for _, f := range fees {
				keys = append(keys, f.FeeCode()+"/"+itoa(f.SeqNo))
			}
			assert.Equal(t, tt.wantKeys, keys)
		})
	}
}

func TestRepository_Normalizes(t *testing.T) {
	repo := loadTestRepository(t)
	fees, err := repo.FeesByCarrier(context.Background(), "LH")
	require.NoError(t, err)

	assert.Equal(t, domain.FeeApplPerDirectionMax, fees[0].FeeApplInd)
	assert.Equal(t, domain.SectorInd, fees[0].SectorPortionInd)
	assert.Equal(t, domain.PortionInd, fees[1].SectorPortionInd)
	assert.Equal(t, domain.Blank, fees[1].FeeApplInd)
	assert.Equal(t, "5", fees[3].Amount.String())

	ba, err := repo.FeesByCarrier(context.Background(), "BA")
	require.NoError(t, err)
	assert.True(t, ba[0].IsPercentage())
}

func TestRepository_ReferenceTables(t *testing.T) {
	repo := loadTestRepository(t)
	ctx := context.Background()

	rec, err := repo.NonConcurrence(ctx, "LH")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 7, rec.CarrierApplTblItemNo)
	assert.Equal(t, domain.Blank, rec.SelfAppl)

	none, err := repo.NonConcurrence(ctx, "BA")
	require.NoError(t, err)
	assert.Nil(t, none)

	t190, err := repo.CarrierApplication(ctx, 7)
	require.NoError(t, err)
	require.Len(t, t190, 2)
	assert.Equal(t, domain.DollarCarrier, t190[0].Carrier)
	assert.Equal(t, domain.Blank, t190[0].ApplInd)
	assert.Equal(t, domain.IndicatorX, t190[1].ApplInd)

	t186, err := repo.CarrierFlights(ctx, 12)
	require.NoError(t, err)
	require.Len(t, t186, 1)
	assert.Equal(t, 499, t186[0].Flt2)

	missing, err := repo.CarrierFlights(ctx, 13)
	require.NoError(t, err)
	assert.Empty(t, missing)

	zone, err := repo.Zone(ctx, "atp", "210")
	require.NoError(t, err)
	assert.Equal(t, []domain.LocKey{
		{Type: domain.LocTypeNation, Code: "DE"},
		{Type: domain.LocTypeNation, Code: "AT"},
	}, zone)

	require.Len(t, repo.Rates(), 1)
	assert.Equal(t, "0.92", repo.Rates()[0].PerNUC.String())
	assert.Equal(t, []string{"BA", "LH"}, repo.Carriers())
}

func TestRepository_CancelledContext(t *testing.T) {
	repo := loadTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FeesByCarrier(ctx, "LH")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.Zone(ctx, "ATP", "210")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"malformed json", `{"fees": [`, "parse filing bundle"},
		{"missing carrier", `{"fees": [{"taxCode": "YQ"}]}`, "carrier and tax code are required"},
		{"bad table item", `{"carrierApplication": {"abc": []}}`, "carrier application item"},
		{"bad flight item", `{"carrierFlights": {"x1": []}}`, "carrier flight item"},
		{"long indicator", `{"fees": [{"carrier": "LH", "taxCode": "YQ", "feeApplInd": "12"}]}`, "must be one character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.json")
	require.NoError(t, os.WriteFile(path, []byte(bundleJSON), 0o600))

	repo, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, repo.Carriers(), 2)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "read filing bundle")
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
