package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchReq_CacheKeyFormat(t *testing.T) {
	testCases := []struct {
		name     string
		req      SearchReq
		expected string
	}{
		{
			name:     "dhaka center",
			req:      SearchReq{Lat: 23.8103, Lon: 90.4125, RadiusKM: 5, Limit: 20},
			expected: "search:23.81030:90.41250:5.00:20",
		},
		{
			name:     "rounded to five decimals",
			req:      SearchReq{Lat: 23.8103456, Lon: 90.4125999, RadiusKM: 2.5, Limit: 10},
			expected: "search:23.81035:90.41260:2.50:10",
		},
		{
			name:     "negative coordinates",
			req:      SearchReq{Lat: -33.8688, Lon: -70.6693, RadiusKM: 50, Limit: 100},
			expected: "search:-33.86880:-70.66930:50.00:100",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.req.CacheKey())
		})
	}
}

func TestSearchReq_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		req     SearchReq
		wantErr bool
	}{
		{name: "valid", req: SearchReq{Lat: 23.8, Lon: 90.4, RadiusKM: 5, Limit: 20}},
		{name: "default limit applied", req: SearchReq{Lat: 23.8, Lon: 90.4, RadiusKM: 5}},
		{name: "lat too high", req: SearchReq{Lat: 91, Lon: 0, RadiusKM: 5, Limit: 20}, wantErr: true},
		{name: "lat too low", req: SearchReq{Lat: -91, Lon: 0, RadiusKM: 5, Limit: 20}, wantErr: true},
		{name: "lon out of range", req: SearchReq{Lat: 0, Lon: 181, RadiusKM: 5, Limit: 20}, wantErr: true},
		{name: "zero radius", req: SearchReq{Lat: 0, Lon: 0, RadiusKM: 0, Limit: 20}, wantErr: true},
		{name: "radius above cap", req: SearchReq{Lat: 0, Lon: 0, RadiusKM: 51, Limit: 20}, wantErr: true},
		{name: "limit above cap", req: SearchReq{Lat: 0, Lon: 0, RadiusKM: 5, Limit: 101}, wantErr: true},
		{name: "negative limit", req: SearchReq{Lat: 0, Lon: 0, RadiusKM: 5, Limit: -1}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSearchReq_DefaultLimit(t *testing.T) {
	req := SearchReq{Lat: 1, Lon: 1, RadiusKM: 5}
	assert.NoError(t, req.Validate())
	assert.Equal(t, 20, req.Limit)
}
