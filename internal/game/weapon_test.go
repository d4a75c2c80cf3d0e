package game

import (
	"math"
	"testing"
)

func testLoadout(fireRate float64, ammo AmmoSpec) Loadout {
	lo := DefaultLoadout()
	lo.Weapon = WeaponSpec{Name: "Test Gun", FireRate: fireRate, Ammo: ammo}
	return lo
}

func TestWeapon_SecondFireWithinPeriodIsNoop(t *testing.T) {
	owner := NewDrone(0, SidePlayer, 0, 0, 0, 0, DefaultLoadout())
	w := NewWeapon(WeaponSpec{FireRate: 2, Ammo: PulseShot}, Gimbals[0])

	if b := w.Fire(owner); b == nil {
		t.Fatal("expected a fresh weapon to fire")
	}
	if math.Abs(w.Cooldown-0.5) > eps {
		t.Fatalf("expected cooldown reset to 0.5, got %.4f", w.Cooldown)
	}
	if b := w.Fire(owner); b != nil {
		t.Fatal("expected no bullet while cooling down")
	}
	w.Update(0.49)
	if b := w.Fire(owner); b != nil {
		t.Fatal("expected no bullet 0.49s after firing at 2 shots/s")
	}
	w.Update(0.01)
	if b := w.Fire(owner); b == nil {
		t.Fatal("expected a bullet once the full period elapsed")
	}
}

func TestWeapon_UpdateNeverBelowZero(t *testing.T) {
	w := NewWeapon(WeaponSpec{FireRate: 1, Ammo: PulseShot}, Gimbals[0])
	w.Cooldown = 0.2
	w.Update(1)
	if w.Cooldown != 0 {
		t.Fatalf("expected cooldown floored at 0, got %.4f", w.Cooldown)
	}
}

func TestWeapon_FireRateBoundsShotSpacing(t *testing.T) {
	owner := NewDrone(0, SidePlayer, 0, 0, 0, 0, DefaultLoadout())
	for _, rate := range []float64{0.6, 1.2, 2, 4, 10} {
		w := NewWeapon(WeaponSpec{FireRate: rate, Ammo: PulseShot}, Gimbals[0])
		const dt = 1.0 / 60
		last := -1.0
		shots := 0
		for i := 1; i <= 600; i++ {
			w.Update(dt)
			if w.Fire(owner) == nil {
				continue
			}
			now := float64(i) * dt
			if last >= 0 && now-last < 1/rate-1e-6 {
				t.Fatalf("rate %.1f: shots %.4fs apart, expected at least %.4fs", rate, now-last, 1/rate)
			}
			last = now
			shots++
		}
		if max := int(10*rate) + 1; shots > max {
			t.Fatalf("rate %.1f: expected at most %d shots in 10s, got %d", rate, max, shots)
		}
	}
}

func TestWeapon_GimbalOffsetsBulletHeading(t *testing.T) {
	owner := NewDrone(0, SidePlayer, 0, 100, 100, 0.5, DefaultLoadout())
	w := NewWeapon(Weapons[0], GimbalSpec{Offset: 0.07})
	b := w.Fire(owner)
	if b == nil {
		t.Fatal("expected a bullet")
	}
	if math.Abs(b.Angle-0.57) > eps {
		t.Fatalf("expected bullet angle 0.57, got %.4f", b.Angle)
	}
	if b.OwnerID != owner.ID || b.Side != SidePlayer || b.Damage != PulseShot.Damage {
		t.Fatalf("expected bullet stamped with owner, side and ammo damage, got %+v", b)
	}
}

func TestBullet_TravelsStraightUntilRangeExhausted(t *testing.T) {
	ammo := AmmoSpec{Name: "test-shot", Speed: 50, Radius: 2, Damage: 1, Lifetime: 2}
	if ammo.Range() != 100 {
		t.Fatalf("expected range 100, got %.1f", ammo.Range())
	}
	owner := NewDrone(0, SidePlayer, 0, 0, 0, 0, testLoadout(1, ammo))
	b := NewBullet(owner, ammo, math.Pi/2)

	const dt = 0.1
	for tick := 1; tick <= 19; tick++ {
		b.Update(dt)
		if !b.Alive {
			t.Fatalf("expected bullet alive at t=%.1f, died early", float64(tick)*dt)
		}
		want := 50 * float64(tick) * dt
		if math.Abs(b.Position.X) > 1e-6 || math.Abs(b.Position.Y-want) > 1e-6 {
			t.Fatalf("t=%.1f: expected (0,%.1f), got (%.4f,%.4f)", float64(tick)*dt, want, b.Position.X, b.Position.Y)
		}
	}
	b.Update(dt)
	if b.Alive {
		t.Fatalf("expected bullet dead at exactly t=2.0, remaining range %.6f", b.RemainingRange)
	}
	if b.RemainingRange != 0 {
		t.Fatalf("expected remaining range 0, got %.6f", b.RemainingRange)
	}
}

func TestParticleManager_ExpiresBulletsLeavingArena(t *testing.T) {
	ammo := AmmoSpec{Name: "test-shot", Speed: 1000, Radius: 2, Lifetime: 100}
	owner := NewDrone(0, SidePlayer, 0, 10, 10, 0, testLoadout(1, ammo))
	pm := NewParticleManager()
	pm.Add(NewBullet(owner, ammo, math.Pi))
	arena := Arena{Width: 200, Height: 200}

	pm.Update(0.1, arena) // x = -90, inside the margin
	if pm.Sweep() != 0 {
		t.Fatal("expected bullet kept while within the arena margin")
	}
	pm.Update(0.1, arena) // x = -190
	if n := pm.Sweep(); n != 1 || pm.Len() != 0 {
		t.Fatalf("expected bullet expired outside the margin, swept=%d left=%d", n, pm.Len())
	}
}
