package benchmark

import (
	"fmt"
	"testing"

	"github.com/entropyseed/seedseal/internal/config"
	"github.com/entropyseed/seedseal/internal/crypto"
	"github.com/entropyseed/seedseal/internal/events"
	"github.com/entropyseed/seedseal/internal/services/seal"
	"github.com/entropyseed/seedseal/test/testutil"
)

func BenchmarkCoordinateKeyDerivation(b *testing.B) {
	seed := testutil.FixedSeed()
	salt := testutil.RandomBytes(b, crypto.SaltSize)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		canonical, err := crypto.CoordinateBytes(seed, crypto.DefaultPrecision)
		if err != nil {
			b.Fatal(err)
		}
		_, err = crypto.DeriveKey(crypto.MixSeed(canonical, salt),
			[]byte(crypto.CoordinateKeyInfo), crypto.KeySize)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPoolEncoding(b *testing.B) {
	pool := testutil.CapturePool(b, 128)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := crypto.PoolBytes(pool); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSeal(b *testing.B) {
	key := testutil.RandomBytes(b, crypto.KeySize)
	nonce := testutil.RandomBytes(b, crypto.NonceSize)

	for _, size := range []int{64, 1024, 64 * 1024} {
		b.Run(fmt.Sprintf("%dB", size), func(b *testing.B) {
			plaintext := testutil.RandomBytes(b, size)

			b.ResetTimer()
			b.ReportAllocs()
			b.SetBytes(int64(size))

			for i := 0; i < b.N; i++ {
				if _, err := crypto.Seal(key, nonce, plaintext, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkOpen(b *testing.B) {
	key := testutil.RandomBytes(b, crypto.KeySize)
	nonce := testutil.RandomBytes(b, crypto.NonceSize)

	for _, size := range []int{64, 1024, 64 * 1024} {
		b.Run(fmt.Sprintf("%dB", size), func(b *testing.B) {
			sealed, err := crypto.Seal(key, nonce, testutil.RandomBytes(b, size), nil)
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			b.ReportAllocs()
			b.SetBytes(int64(size))

			for i := 0; i < b.N; i++ {
				if _, err := crypto.Open(key, nonce, sealed, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkServiceEncryptDecrypt(b *testing.B) {
	svc := seal.NewService(crypto.DefaultPrecision, config.EncodingHex, events.Nop())
	seed := testutil.FixedSeed()
	plaintext := testutil.RandomBytes(b, 256)

	b.Run("encrypt", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := svc.Encrypt(seed, plaintext, nil); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("decrypt", func(b *testing.B) {
		packaged, err := svc.Encrypt(seed, plaintext, nil)
		if err != nil {
			b.Fatal(err)
		}

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			if _, err := svc.Decrypt(seed, packaged, nil); err != nil {
				b.Fatal(err)
			}
		}
	})
}
