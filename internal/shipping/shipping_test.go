package shipping

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		region string
		fee    string
	}{
		{"sao paulo formatted", "01310-100", "SP", "15"},
		{"rio", "22041001", "RJ/ES", "20"},
		{"belo horizonte", "30.130-010", "MG", "22"},
		{"salvador", "40020000", "BA/SE", "28"},
		{"brasilia", "70040 010", "Centro-Oeste", "30"},
		{"curitiba", "80010000", "PR/SC", "22"},
		{"porto alegre", "90010000", "RS", "25"},
		{"recife falls back", "50030230", FallbackRegion, "35"},
		{"manaus falls back", "69005000", FallbackRegion, "35"},
		{"below every range", "00999999", FallbackRegion, "35"},
		{"range lower bound", "01000000", "SP", "15"},
		{"range upper bound", "19999999", "SP", "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Estimate(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			assert.Equal(t, tt.region, q.Region)
			assert.Equal(t, tt.fee, q.Fee.String())
			assert.Equal(t, 8, len(q.PostalCode))
		})
	}
}

func TestEstimateIsPure(t *testing.T) {
	first, err := Estimate("01310-100")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Estimate("01310100")
		if err != nil {
			t.Fatal(err)
		}
		assert.T(t, first.Fee.Equal(again.Fee))
		assert.Equal(t, first.Region, again.Region)
	}
}

func TestEstimateRejectsInvalidCodes(t *testing.T) {
	for _, input := range []string{"", "1234567", "123456789", "abcdefgh", "0131-010"} {
		_, err := Estimate(input)
		assert.Equal(t, ErrInvalidPostalCode, err, input)
	}
}
