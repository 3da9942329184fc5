package research

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// GeoIP 조회는 짧게 제한 - 실패해도 리서치는 계속 진행
const geoLookupTimeout = 2 * time.Second

// geoIPReply - ip-api 스타일 응답
type geoIPReply struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// lookupLocation - 서버 공인 IP 기준 대략적 위치 조회 (best-effort)
// 실패하면 nil 반환 - 위치 bias 없이 grounding 진행
func lookupLocation(ctx context.Context, endpoint string) *LatLng {
	if endpoint == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, geoLookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("⚠️  [Research] Geo lookup skipped: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var reply geoIPReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil
	}
	if reply.Lat == 0 && reply.Lon == 0 {
		return nil
	}

	return &LatLng{Latitude: reply.Lat, Longitude: reply.Lon}
}
