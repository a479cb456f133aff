package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"social/util"

	"golang.org/x/crypto/argon2"
)

var ErrNoPassphrase = errors.New("secure store: no passphrase configured")

// parámetros de argon2id para derivar la clave del fichero
const (
	kdfTime    = 1
	kdfMemory  = 64 * 1024
	kdfThreads = 4
	keyLen     = 32
	saltLen    = 16
)

type sealedToken struct {
	Salt  string `json:"salt"`
	Nonce string `json:"nonce"`
	Data  string `json:"data"`
}

// SecureFileStore cifra el token con AES-256-GCM. La clave se deriva de la
// frase de paso con argon2id y una sal aleatoria por fichero
type SecureFileStore struct {
	path       string
	passphrase []byte
}

func NewSecureFileStore(dir, passphrase string) *SecureFileStore {
	return &SecureFileStore{path: filepath.Join(dir, Key+".enc"), passphrase: []byte(passphrase)}
}

func (s *SecureFileStore) deriveKey(salt []byte) []byte {
	return argon2.IDKey(s.passphrase, salt, kdfTime, kdfMemory, kdfThreads, keyLen)
}

func (s *SecureFileStore) gcm(salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.deriveKey(salt))
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (s *SecureFileStore) Save(token string) error {
	if len(s.passphrase) == 0 {
		return ErrNoPassphrase
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	aead, err := s.gcm(salt)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}

	sealed := sealedToken{
		Salt:  util.Encode64(salt),
		Nonce: util.Encode64(nonce),
		Data:  util.Encode64(aead.Seal(nil, nonce, []byte(token), []byte(Key))),
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}
	return os.WriteFile(s.path, util.EncodeJSON(sealed), 0600)
}

func (s *SecureFileStore) Get() (string, error) {
	if len(s.passphrase) == 0 {
		return "", ErrNoPassphrase
	}

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}

	var sealed sealedToken
	if err := json.Unmarshal(b, &sealed); err != nil {
		return "", fmt.Errorf("decoding token file: %w", err)
	}
	salt, err := util.Decode64(sealed.Salt)
	if err != nil {
		return "", fmt.Errorf("decoding salt: %w", err)
	}
	nonce, err := util.Decode64(sealed.Nonce)
	if err != nil {
		return "", fmt.Errorf("decoding nonce: %w", err)
	}
	data, err := util.Decode64(sealed.Data)
	if err != nil {
		return "", fmt.Errorf("decoding token: %w", err)
	}

	aead, err := s.gcm(salt)
	if err != nil {
		return "", err
	}
	if len(nonce) != aead.NonceSize() {
		return "", fmt.Errorf("decrypting token: bad nonce size %d", len(nonce))
	}
	plain, err := aead.Open(nil, nonce, data, []byte(Key))
	if err != nil {
		return "", fmt.Errorf("decrypting token: %w", err)
	}
	return string(plain), nil
}

func (s *SecureFileStore) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}
