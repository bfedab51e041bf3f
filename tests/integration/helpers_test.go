//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

type createdRoom struct {
	RoomID  string `json:"roomId"`
	JoinURL string `json:"joinUrl"`
	QRURL   string `json:"qrUrl"`
}

func createRoom(t *testing.T, baseURL string) createdRoom {
	t.Helper()

	resp, err := http.Post(fmt.Sprintf("%s/v1/rooms", baseURL), "application/json", nil)
	if err != nil {
		t.Fatalf("create room request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected create room status: %d", resp.StatusCode)
	}

	var out createdRoom
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode create room response failed: %v", err)
	}
	return out
}

func getJSON(t *testing.T, url string, dst interface{}) int {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if dst != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatalf("decode %s failed: %v", url, err)
		}
	}
	return resp.StatusCode
}
