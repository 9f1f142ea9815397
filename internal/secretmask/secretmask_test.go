package secretmask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskKeyedLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"password line", "password: hunter2", "password: " + Redacted},
		{"token with equals", "token=abcdef", "token=" + Redacted},
		{"non-sensitive key untouched", "name: nginx", "name: nginx"},
		{"case insensitive key", "Authorization: Bearer xyz", "Authorization: " + Redacted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mask(tt.in))
		})
	}
}

func TestMaskIsIdempotent(t *testing.T) {
	in := "password: hunter2\ntoken=YWJjZGVmZ2hpamtsbW5vcHFyc3R1dnd4eXo="
	once := Mask(in)
	twice := Mask(once)
	assert.Equal(t, once, twice)
}

func TestMaskBase64Run(t *testing.T) {
	in := "data blob: YWJjZGVmZ2hpamtsbW5vcHFyc3R1dnd4eXoxMjM0NTY3ODkw end"
	out := Mask(in)
	assert.Contains(t, out, Redacted)
	assert.NotContains(t, out, "YWJjZGVmZ2hpamtsbW5vcHFyc3R1dnd4eXoxMjM0NTY3ODkw")
}

func TestMaskJSONMasksSecretDataRegardlessOfKeyName(t *testing.T) {
	secret := map[string]interface{}{
		"kind": "Secret",
		"data": map[string]interface{}{
			"username": "YWRtaW4=",
			"hostname": "ZGF0YWJhc2UuZXhhbXBsZS5jb20=",
		},
	}
	masked := MaskJSON(secret).(map[string]interface{})
	data := masked["data"].(map[string]interface{})
	assert.Equal(t, Redacted, data["username"])
	assert.Equal(t, Redacted, data["hostname"])
}

func TestMaskJSONLeavesNonSecretObjectsAlone(t *testing.T) {
	pod := map[string]interface{}{
		"kind": "Pod",
		"data": map[string]interface{}{
			"replicas": "3",
		},
	}
	masked := MaskJSON(pod).(map[string]interface{})
	data := masked["data"].(map[string]interface{})
	assert.Equal(t, "3", data["replicas"])
}

func TestMaskAnyRoundTripsThroughJSON(t *testing.T) {
	in := map[string]interface{}{"password": "hunter2", "name": "demo"}
	out := MaskAny(in).(map[string]interface{})
	assert.Equal(t, Redacted, out["password"])
	assert.Equal(t, "demo", out["name"])
}

func TestMaskAnyHandlesNil(t *testing.T) {
	assert.Nil(t, MaskAny(nil))
}
