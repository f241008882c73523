package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"09:00", false},
		{"00:00", false},
		{"23:59", false},
		{"9:00", true},
		{"09:60", true},
		{"25:00", true},
		{"0900", true},
		{"", true},
		{"09:00:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.in, got.String())
			}
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 9*60, TimeString("09:00").Minutes())
	assert.Equal(t, 23*60+59, TimeString("23:59").Minutes())
	assert.Equal(t, 24*60, TimeString("24:00").Minutes())
	assert.Equal(t, 0, TimeString("garbage").Minutes())
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("23:59").IsBefore(TimeString("24:00")))
	assert.True(t, TimeString("10:30").IsAfter(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsAfter(TimeString("10:00")))
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		minutes int
		want    string
		wantErr error
	}{
		{"обычное сложение", "09:00", 60, "10:00", nil},
		{"через границу часа", "10:45", 30, "11:15", nil},
		{"ноль минут", "10:00", 0, "10:00", nil},
		{"ровно конец суток", "23:00", 60, "24:00", nil},
		{"выход за сутки", "23:30", 60, "", ErrTimeOutOfRange},
		{"отрицательный результат", "00:30", -60, "", ErrTimeOutOfRange},
		{"некорректный исходник", "garbage", 10, "", ErrInvalidTimeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeString(tt.start).AddMinutes(tt.minutes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_OnDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("10:30").OnDate(date, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 14, 10, 30, 0, 0, loc), got)
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("garbage").Value()
	assert.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:30"))
	assert.Equal(t, "09:30", ts.String())

	// Postgres TIME отдаёт секунды
	require.NoError(t, ts.Scan("14:45:00"))
	assert.Equal(t, "14:45", ts.String())

	require.NoError(t, ts.Scan([]byte("18:00")))
	assert.Equal(t, "18:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 9, 14, 11, 15, 0, 0, time.UTC)))
	assert.Equal(t, "11:15", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
	assert.Error(t, ts.Scan("garbage"))
}
