package wallet

import (
	"encoding/hex"
	"github.com/egaotan/solana-http-server/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

func secretFromSeedHex(t *testing.T, seedHex, pubHex string) string {
	seed, err := hex.DecodeString(seedHex)
	require.NoError(t, err)
	pub, err := hex.DecodeString(pubHex)
	require.NoError(t, err)
	return codec.EncodeBase58(append(seed, pub...))
}

func TestSignVerifyHelloWorld(t *testing.T) {
	kp := GenerateKeypair()
	signed, err := Sign("hello", kp.Secret)
	require.NoError(t, err)
	assert.Equal(t, kp.Pubkey, signed.PublicKey)
	assert.Equal(t, "hello", signed.Message)

	res, err := Verify("hello", signed.Signature, kp.Pubkey)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, kp.Pubkey, res.Pubkey)

	res, err = Verify("world", signed.Signature, kp.Pubkey)
	require.NoError(t, err)
	assert.False(t, res.Valid)
}

func TestRoundTripManyMessages(t *testing.T) {
	messages := []string{"", "a", "hello world", "héllo ✓", string(make([]byte, 4096))}
	for i := 0; i < 8; i++ {
		kp := GenerateKeypair()
		for _, m := range messages {
			signed, err := Sign(m, kp.Secret)
			require.NoError(t, err)
			res, err := Verify(m, signed.Signature, kp.Pubkey)
			require.NoError(t, err)
			assert.True(t, res.Valid)
		}
	}
}

func TestSignRFC8032Vectors(t *testing.T) {
	cases := []struct {
		seed, pub, message, sig string
	}{
		{
			seed:    "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
			pub:     "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
			message: "",
			sig:     "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b",
		},
		{
			seed:    "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb",
			pub:     "3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c",
			message: "r",
			sig:     "92a009a9f0d4cab8720e820b5f642540a2b27b5416503f8fb3762223ebdb69da085ac1e43e15996e458f3613d0f11d8c387b2eaeb4302aeeb00d291612bb0c00",
		},
	}
	for _, c := range cases {
		secret := secretFromSeedHex(t, c.seed, c.pub)
		signed, err := Sign(c.message, secret)
		require.NoError(t, err)
		sig, err := codec.DecodeBase64(signed.Signature)
		require.NoError(t, err)
		assert.Equal(t, c.sig, hex.EncodeToString(sig))

		pub, _ := hex.DecodeString(c.pub)
		assert.Equal(t, codec.EncodeBase58(pub), signed.PublicKey)
	}
}

func TestSignErrors(t *testing.T) {
	for _, bad := range []string{"0abc", "Oabc", "Iabc", "labc"} {
		_, err := Sign("hello", bad)
		assert.ErrorIs(t, err, codec.ErrInvalidEncoding, bad)
	}

	_, err := Sign("hello", codec.EncodeBase58(make([]byte, 32)))
	assert.ErrorIs(t, err, codec.ErrInvalidKeyLength)

	kp := GenerateKeypair()
	secret, err := codec.DecodeBase58(kp.Secret)
	require.NoError(t, err)
	secret[63] ^= 0x01
	_, err = Sign("hello", codec.EncodeBase58(secret))
	assert.ErrorIs(t, err, codec.ErrInvalidKeyFormat)
}

func TestVerifyErrors(t *testing.T) {
	kp := GenerateKeypair()
	signed, err := Sign("hello", kp.Secret)
	require.NoError(t, err)

	_, err = Verify("hello", signed.Signature, "0OIl")
	assert.ErrorIs(t, err, codec.ErrInvalidEncoding)

	_, err = Verify("hello", signed.Signature, codec.EncodeBase58(make([]byte, 31)))
	assert.ErrorIs(t, err, codec.ErrInvalidKeyLength)

	_, err = Verify("hello", "not base64!", kp.Pubkey)
	assert.ErrorIs(t, err, codec.ErrInvalidEncoding)

	_, err = Verify("hello", codec.EncodeBase64(make([]byte, 65)), kp.Pubkey)
	assert.ErrorIs(t, err, codec.ErrInvalidSignatureLength)

	sig, err := codec.DecodeBase64(signed.Signature)
	require.NoError(t, err)
	sig[63] |= 0x80
	_, err = Verify("hello", codec.EncodeBase64(sig), kp.Pubkey)
	assert.ErrorIs(t, err, codec.ErrInvalidSignatureFormat)
}

func TestVerifyBitFlips(t *testing.T) {
	kp := GenerateKeypair()
	signed, err := Sign("bit flips", kp.Secret)
	require.NoError(t, err)
	sig, err := codec.DecodeBase64(signed.Signature)
	require.NoError(t, err)
	pub, err := codec.DecodeBase58(kp.Pubkey)
	require.NoError(t, err)

	for i := 0; i < len(sig); i++ {
		for bit := 0; bit < 8; bit++ {
			flipped := append([]byte(nil), sig...)
			flipped[i] ^= 1 << bit
			res, err := Verify("bit flips", codec.EncodeBase64(flipped), kp.Pubkey)
			if i == 63 && bit >= 5 {
				assert.ErrorIs(t, err, codec.ErrInvalidSignatureFormat)
				continue
			}
			require.NoError(t, err)
			assert.False(t, res.Valid, "signature byte %d bit %d", i, bit)
		}
	}

	for i := 0; i < len(pub); i++ {
		for bit := 0; bit < 8; bit++ {
			flipped := append([]byte(nil), pub...)
			flipped[i] ^= 1 << bit
			res, err := Verify("bit flips", signed.Signature, codec.EncodeBase58(flipped))
			if err != nil {
				assert.ErrorIs(t, err, codec.ErrInvalidKeyFormat)
				continue
			}
			assert.False(t, res.Valid, "public key byte %d bit %d", i, bit)
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kp := GenerateKeypair()
			signed, err := Sign("concurrent", kp.Secret)
			if !assert.NoError(t, err) {
				return
			}
			res, err := Verify("concurrent", signed.Signature, kp.Pubkey)
			assert.NoError(t, err)
			assert.True(t, res.Valid)
		}()
	}
	wg.Wait()
}
