//go:build !windows

package power

import "testing"

// Fuera de Windows setKeepAwake no tiene soporte, así que el ciclo de
// vida se prueba sobre el no-op.

func TestAcquire_UnsupportedPlatform(t *testing.T) {
	k := New()
	if k.Acquire() {
		t.Fatal("Acquire must report false without platform support")
	}
	if k.Active() {
		t.Fatal("Active must stay false")
	}
}

func TestRelease_Idempotent(t *testing.T) {
	k := New()
	k.Acquire()
	k.Release()
	k.Release() // segunda llamada: no-op

	if k.Acquire() {
		t.Fatal("Acquire after Release must fail")
	}
	if k.Active() {
		t.Fatal("released resource must not reactivate")
	}
}
