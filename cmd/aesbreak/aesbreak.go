// Command aesbreak runs the attacks in package attack against freshly keyed victims and logs what they recover.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/attack"
	"github.com/codahale/aesbreak/kex"
	"github.com/codahale/aesbreak/modes"
	"github.com/codahale/aesbreak/oracle"
)

//nolint:gochecknoglobals // fixed demo secret
var secretSuffix = "Um9sbGluJyBpbiBteSA1LjAKV2l0aCBteSByYWctdG9wIGRvd24gc28gbXkgaGFpciBjYW4gYmxvdwpUaGUgZ2lybGllcyBvbiBzdGFuZGJ5IHdhdmluZyBqdXN0IHRvIHNheSBoaQpEaWQgeW91IHN0b3A/IE5vLCBJIGp1c3QgZHJvdmUgYnkK"

type runner func(log *slog.Logger, opts attack.Options, prefixMax int) error

//nolint:gochecknoglobals // command table
var attacks = map[string]runner{
	"ecb":      runECB,
	"prefix":   runPrefix,
	"padding":  runPadding,
	"bitflip":  runBitflip,
	"ctrflip":  runCTRFlip,
	"cutpaste": runCutPaste,
	"ivkey":    runIVKey,
	"ctredit":  runCTREdit,
	"nonce":    runFixedNonce,
	"kex":      runKex,
}

func main() {
	var (
		name      = flag.String("attack", "all", "the attack to run (ecb, prefix, padding, bitflip, ctrflip, cutpaste, ivkey, ctredit, nonce, kex, all)")
		prefixMax = flag.Int("prefix-max", 256, "the maximum random prefix length for the prefix attack")
		workers   = flag.Int("workers", 1, "the number of goroutines searching candidates for each byte")
	)
	flag.Parse()

	log := slog.New(slog.Default().Handler())
	log.Info("starting", "aesni", aes.HardwareAccelerated(), "workers", *workers)

	names := []string{*name}
	if *name == "all" {
		names = slices.Sorted(maps.Keys(attacks))
	}

	opts := attack.Options{Workers: *workers}
	failed := false
	for _, n := range names {
		run, ok := attacks[n]
		if !ok {
			log.Error("unknown attack", "attack", n)
			os.Exit(2)
		}

		if err := run(log.With("attack", n), opts, *prefixMax); err != nil {
			log.Error("attack failed", "attack", n, "err", err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func runECB(log *slog.Logger, opts attack.Options, _ int) error {
	suffix, _ := base64.StdEncoding.DecodeString(secretSuffix)
	o := oracle.CountEncrypts(oracle.NewSuffixECB(rand.Reader, nil, suffix))

	recovered, err := opts.RecoverSuffix(o)
	if err != nil {
		return err
	}
	log.Info("recovered suffix", "suffix", string(recovered), "queries", o.Queries())
	return nil
}

func runPrefix(log *slog.Logger, opts attack.Options, prefixMax int) error {
	suffix, _ := base64.StdEncoding.DecodeString(secretSuffix)
	o := oracle.CountEncrypts(oracle.NewRandomPrefixECB(rand.Reader, prefixMax, suffix))

	prefix, err := attack.FindPrefix(o, aes.BlockSize)
	if err != nil {
		return err
	}
	log.Info("measured prefix", "len", prefix.Len, "align", prefix.Align)

	recovered, err := opts.RecoverSuffix(o)
	if err != nil {
		return err
	}
	log.Info("recovered suffix", "suffix", string(recovered), "queries", o.Queries())
	return nil
}

func runPadding(log *slog.Logger, opts attack.Options, _ int) error {
	for i, line := range oracle.Lines {
		plaintext, _ := base64.StdEncoding.DecodeString(line)
		s := oracle.NewPaddingServer(rand.Reader, plaintext)
		o := oracle.CountChecks(s)
		iv, ciphertext := s.Ciphertext()

		recovered, err := opts.PaddingOracle(o, iv, ciphertext)
		if err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		log.Info("recovered line", "line", i, "plaintext", string(recovered), "queries", o.Queries())
	}
	return nil
}

func runBitflip(log *slog.Logger, _ attack.Options, _ int) error {
	s := oracle.NewCommentStore(rand.Reader, modes.CBC)
	forged, err := attack.ForgeAdmin(s)
	if err != nil {
		return err
	}
	log.Info("forged cookie", "ciphertext", hex.EncodeToString(forged), "admin", s.IsAdmin(forged))
	return nil
}

func runCTRFlip(log *slog.Logger, _ attack.Options, _ int) error {
	s := oracle.NewCommentStore(rand.Reader, modes.CTR)
	forged, err := attack.ForgeAdminCTR(s)
	if err != nil {
		return err
	}
	log.Info("forged cookie", "ciphertext", hex.EncodeToString(forged), "admin", s.IsAdmin(forged))
	return nil
}

func runCutPaste(log *slog.Logger, _ attack.Options, _ int) error {
	s := oracle.NewProfileStore(rand.Reader)
	forged, err := attack.CutAndPaste(s)
	if err != nil {
		return err
	}

	role, err := s.Role(forged)
	if err != nil {
		return err
	}
	log.Info("forged profile", "ciphertext", hex.EncodeToString(forged), "role", role)
	return nil
}

func runIVKey(log *slog.Logger, _ attack.Options, _ int) error {
	s := oracle.NewIVKeyStore(rand.Reader)
	key, err := attack.RecoverIVKey(s)
	if err != nil {
		return err
	}
	log.Info("recovered key", "key", hex.EncodeToString(key[:]), "match", key == s.Key())
	return nil
}

func runCTREdit(log *slog.Logger, _ attack.Options, _ int) error {
	suffix, _ := base64.StdEncoding.DecodeString(secretSuffix)
	recovered, err := attack.RecoverCTREdit(oracle.NewEditStore(rand.Reader, suffix))
	if err != nil {
		return err
	}
	log.Info("recovered plaintext", "plaintext", string(recovered))
	return nil
}

func runFixedNonce(log *slog.Logger, _ attack.Options, _ int) error {
	s := oracle.NewFixedNonceCTR(rand.Reader)
	ciphertexts := make([][]byte, len(oracle.Verses))
	for i, verse := range oracle.Verses {
		ciphertexts[i] = s.Encrypt([]byte(verse))
	}

	plaintexts, err := attack.BreakFixedNonceCTR(ciphertexts)
	if err != nil {
		return err
	}
	for i, plaintext := range plaintexts {
		log.Info("recovered verse", "line", i, "plaintext", string(plaintext))
	}
	return nil
}

func runKex(log *slog.Logger, _ attack.Options, _ int) error {
	alice, err := kex.NewParty(rand.Reader)
	if err != nil {
		return err
	}
	bob, err := kex.NewParty(rand.Reader)
	if err != nil {
		return err
	}
	m := kex.NewMITM()

	aliceKey, err := alice.SessionKey(m.Relay(bob.Public()))
	if err != nil {
		return err
	}
	bobKey, err := bob.SessionKey(m.Relay(alice.Public()))
	if err != nil {
		return err
	}

	sealed, err := kex.Seal(aliceKey, rand.Reader, []byte("meet me at the usual place"))
	if err != nil {
		return err
	}
	if _, err := kex.Open(bobKey, sealed); err != nil {
		return err
	}

	intercepted, err := m.Decrypt(sealed)
	if err != nil {
		return err
	}
	log.Info("intercepted message", "message", string(intercepted))
	return nil
}
