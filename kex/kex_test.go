package kex_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/codahale/aesbreak/internal/testdata"
	"github.com/codahale/aesbreak/kex"
)

func newParties(t *testing.T, label string) (alice, bob *kex.Party) {
	t.Helper()

	drbg := testdata.New(label)
	alice, err := kex.NewParty(drbg)
	if err != nil {
		t.Fatal(err)
	}
	bob, err = kex.NewParty(drbg)
	if err != nil {
		t.Fatal(err)
	}
	return alice, bob
}

func TestSessionKey(t *testing.T) {
	alice, bob := newParties(t, "aesbreak kex session")

	if got, want := len(alice.Public()), kex.PublicKeySize; got != want {
		t.Errorf("len(Public()) = %d, want = %d", got, want)
	}

	a, err := alice.SessionKey(bob.Public())
	if err != nil {
		t.Fatal(err)
	}
	b, err := bob.SessionKey(alice.Public())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("session keys differ: %x != %x", a, b)
	}

	if _, err := alice.SessionKey(bytes.Repeat([]byte{0xff}, kex.PublicKeySize)); !errors.Is(err, kex.ErrInvalidPublicKey) {
		t.Errorf("SessionKey(invalid) err = %v, want = %v", err, kex.ErrInvalidPublicKey)
	}
}

func TestSealOpen(t *testing.T) {
	drbg := testdata.New("aesbreak kex seal")
	key := [16]byte(drbg.Data(16))
	msg := []byte("this is a secret message")

	sealed, err := kex.Seal(key, drbg, msg)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("valid", func(t *testing.T) {
		got, err := kex.Open(key, sealed)
		if err != nil {
			t.Fatal(err)
		}
		if want := msg; !bytes.Equal(got, want) {
			t.Errorf("Open() = %q, want = %q", got, want)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		if _, err := kex.Open(key, sealed[:20]); !errors.Is(err, kex.ErrInvalidMessage) {
			t.Errorf("Open() err = %v, want = %v", err, kex.ErrInvalidMessage)
		}
	})

	t.Run("bad padding", func(t *testing.T) {
		// The final block holds 24-16=8 message bytes and 8 bytes of 0x08; make the last one 0x09.
		bad := bytes.Clone(sealed)
		bad[len(bad)-17] ^= 0x08 ^ 0x09
		if _, err := kex.Open(key, bad); !errors.Is(err, kex.ErrInvalidMessage) {
			t.Errorf("Open() err = %v, want = %v", err, kex.ErrInvalidMessage)
		}
	})
}

func TestMITM(t *testing.T) {
	alice, bob := newParties(t, "aesbreak kex mitm")
	m := kex.NewMITM()

	a, err := alice.SessionKey(m.Relay(bob.Public()))
	if err != nil {
		t.Fatal(err)
	}
	b, err := bob.SessionKey(m.Relay(alice.Public()))
	if err != nil {
		t.Fatal(err)
	}

	if a != m.Key() || b != m.Key() {
		t.Fatalf("session keys %x and %x were not fixed to %x", a, b, m.Key())
	}

	sealed, err := kex.Seal(a, testdata.New("aesbreak kex mitm iv"), []byte("meet at noon"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := m.Decrypt(sealed)
	if err != nil {
		t.Fatal(err)
	}
	if want := "meet at noon"; string(got) != want {
		t.Errorf("Decrypt() = %q, want = %q", got, want)
	}

	// Bob can still read it, so neither side notices.
	got, err = kex.Open(b, sealed)
	if err != nil {
		t.Fatal(err)
	}
	if want := "meet at noon"; string(got) != want {
		t.Errorf("Open() = %q, want = %q", got, want)
	}
}

func TestStrict(t *testing.T) {
	alice, bob := newParties(t, "aesbreak kex strict")
	alice.Strict = true

	if _, err := alice.SessionKey(kex.NewMITM().Relay(bob.Public())); !errors.Is(err, kex.ErrWeakPublicKey) {
		t.Errorf("SessionKey(identity) err = %v, want = %v", err, kex.ErrWeakPublicKey)
	}
	if _, err := alice.SessionKey(bob.Public()); err != nil {
		t.Errorf("SessionKey() err = %v, want = nil", err)
	}
}

func Example() {
	drbg := testdata.New("aesbreak kex example")
	alice, _ := kex.NewParty(drbg)
	bob, _ := kex.NewParty(drbg)
	m := kex.NewMITM()

	// Each side receives the other's public key by way of the attacker.
	aliceKey, _ := alice.SessionKey(m.Relay(bob.Public()))
	sealed, _ := kex.Seal(aliceKey, drbg, []byte("hello, bob"))

	intercepted, err := m.Decrypt(sealed)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s\n", intercepted)
	// Output:
	// hello, bob
}
