package ingestion

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []registration.Record
		wantErr string
	}{
		{
			name:  "full header",
			input: "date,year,quarter,vehicle_category,manufacturer,registrations\n2024-04-01,2024,2,2W,Acme,10\n",
			want: []registration.Record{
				{Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Year: 2024, Quarter: 2, VehicleCategory: "2W", Manufacturer: "Acme", Registrations: 10},
			},
		},
		{
			name:  "columns in any order without date",
			input: "manufacturer,registrations,vehicle_category,quarter,year\nBeta,7,4W,3,2023\n",
			want: []registration.Record{
				{Date: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), Year: 2023, Quarter: 3, VehicleCategory: "4W", Manufacturer: "Beta", Registrations: 7},
			},
		},
		{
			name:  "period derived from date",
			input: "date,vehicle_category,manufacturer,registrations\n2022-11-20,3W,Gamma,3\n",
			want: []registration.Record{
				{Date: time.Date(2022, 11, 20, 0, 0, 0, 0, time.UTC), Year: 2022, Quarter: 4, VehicleCategory: "3W", Manufacturer: "Gamma", Registrations: 3},
			},
		},
		{
			name:  "header only",
			input: "date,year,quarter,vehicle_category,manufacturer,registrations\n",
			want:  nil,
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:    "missing manufacturer column",
			input:   "year,quarter,vehicle_category,registrations\n2024,1,2W,1\n",
			wantErr: `missing column "manufacturer"`,
		},
		{
			name:    "no period columns",
			input:   "vehicle_category,manufacturer,registrations\n2W,Acme,1\n",
			wantErr: "need year and quarter",
		},
		{
			name:    "non numeric registrations",
			input:   "year,quarter,vehicle_category,manufacturer,registrations\n2024,1,2W,Acme,lots\n",
			wantErr: "line 2: registrations",
		},
		{
			name:    "quarter out of range",
			input:   "year,quarter,vehicle_category,manufacturer,registrations\n2024,1,2W,Acme,1\n2024,0,2W,Acme,1\n",
			wantErr: "line 3: quarter must be in [1,4]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.ErrorIs(t, err, ErrInvalidCSV)
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	records := []registration.Record{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Year: 2024, Quarter: 1, VehicleCategory: "2W", Manufacturer: "Hero MotoCorp", Registrations: 41000},
		{Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Year: 2024, Quarter: 2, VehicleCategory: "4W", Manufacturer: "Tata Motors, Ltd", Registrations: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))
	require.True(t, strings.HasPrefix(buf.String(), "date,year,quarter,vehicle_category,manufacturer,registrations\n"))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, records, got)
}

func TestCSVSource(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is no data", func(t *testing.T) {
		_, err := CSVSource{Path: filepath.Join(dir, "absent.csv")}.Fetch(context.Background())
		require.ErrorIs(t, err, storage.ErrNoData)
	})

	t.Run("save then load", func(t *testing.T) {
		path := filepath.Join(dir, "data", "vehicle_registrations.csv")
		records := []registration.Record{
			{Date: time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), Year: 2023, Quarter: 4, VehicleCategory: "3W", Manufacturer: "Piaggio", Registrations: 4200},
		}
		require.NoError(t, SaveCSV(path, records))

		got, err := CSVSource{Path: path}.Fetch(context.Background())
		require.NoError(t, err)
		require.Equal(t, records, got)
	})
}
