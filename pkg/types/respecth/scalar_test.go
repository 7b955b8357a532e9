package respecth_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarelab/combust/pkg/types/respecth"
)

func TestCoerce(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		numeric bool
		want    float64
	}{
		{"integer literal", "300", true, 300},
		{"float literal", "0.12", true, 0.12},
		{"scientific notation", "1.5e-3", true, 0.0015},
		{"negative", "-42.5", true, -42.5},
		{"plain text", "reported", false, 0},
		{"mixed text", "300K", false, 0},
		{"empty", "", false, 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := respecth.Coerce(tc.in)
			assert.Equal(t, tc.numeric, s.IsNumber())
			if tc.numeric {
				v, ok := s.Float()
				require.True(t, ok)
				assert.InDelta(t, tc.want, v, 1e-12)
			} else {
				assert.Equal(t, tc.in, s.String())
			}
		})
	}
}

func TestScalar_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "300", respecth.Number(300).String())
	assert.Equal(t, "0.12", respecth.Number(0.12).String())
	assert.Equal(t, "OH*", respecth.Text("OH*").String())
}

func TestScalar_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	type payload struct {
		Num  respecth.Scalar `json:"num"`
		Text respecth.Scalar `json:"text"`
	}

	in := payload{Num: respecth.Number(350.5), Text: respecth.Text("pressure_rise")}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"num":350.5,"text":"pressure_rise"}`, string(data))

	var out payload
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
