package auth

// MockStore is an in-memory auth store for testing.
type MockStore struct {
	tokens map[string]string

	// Err, when set, is returned by every call.
	Err error
}

func NewMockStore() *MockStore {
	return &MockStore{tokens: make(map[string]string)}
}

func (m *MockStore) SetToken(gateway string, token string) error {
	if m.Err != nil {
		return m.Err
	}
	m.tokens[NormalizeGateway(gateway)] = token
	return nil
}

func (m *MockStore) GetToken(gateway string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	token, ok := m.tokens[NormalizeGateway(gateway)]
	if !ok {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (m *MockStore) DeleteToken(gateway string) error {
	if m.Err != nil {
		return m.Err
	}
	key := NormalizeGateway(gateway)
	if _, ok := m.tokens[key]; !ok {
		return ErrTokenNotFound
	}
	delete(m.tokens, key)
	return nil
}
