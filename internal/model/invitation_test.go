package model

import (
	"testing"
	"time"
)

func TestInvitationUsable(t *testing.T) {
	now := time.Now()

	t.Run("pending before expiry", func(t *testing.T) {
		inv := Invitation{ExpiresAt: now.Add(time.Hour)}
		if !inv.Usable(now) {
			t.Error("expected usable")
		}
	})

	t.Run("expired", func(t *testing.T) {
		inv := Invitation{ExpiresAt: now.Add(-time.Hour)}
		if inv.Usable(now) {
			t.Error("expected unusable after expiry")
		}
	})

	t.Run("already accepted", func(t *testing.T) {
		accepted := now.Add(-time.Minute)
		inv := Invitation{ExpiresAt: now.Add(time.Hour), AcceptedAt: &accepted}
		if inv.Usable(now) {
			t.Error("expected unusable once accepted")
		}
	})
}
