package authenticating

import (
	"context"
	"testing"

	"github.com/espada/marketplace-api/internal/config"
	"github.com/espada/marketplace-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo guarda usuários em memória, indexados por email
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	f.nextID++
	user.ID = f.nextID
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.users[email], nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{Secret: "segredo-de-teste"},
	}
}

func customerInput() SignupInput {
	return SignupInput{
		Name:        "Maria",
		Lastname:    "Silva",
		Email:       "Maria.Silva@Example.com",
		Password:    "senha-forte",
		AccountType: domain.AccountTypeCustomer,
	}
}

func TestSignup_Customer(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewService(repo, testConfig())

	user, err := service.Signup(context.Background(), customerInput())

	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	// Email normalizado para minúsculas
	assert.Equal(t, "maria.silva@example.com", user.Email)
	// Senha nunca é persistida em claro
	assert.NotEqual(t, "senha-forte", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha-forte")))
}

func TestSignup_Validation(t *testing.T) {
	service := NewService(newFakeUserRepo(), testConfig())

	tests := []struct {
		name    string
		mutate  func(*SignupInput)
		baseErr error
	}{
		{
			name:    "sem email",
			mutate:  func(in *SignupInput) { in.Email = "" },
			baseErr: ErrMissingRequiredData,
		},
		{
			name:    "tipo de conta desconhecido",
			mutate:  func(in *SignupInput) { in.AccountType = "admin" },
			baseErr: ErrInvalidAccountType,
		},
		{
			name: "lojista sem dados da loja",
			mutate: func(in *SignupInput) {
				in.AccountType = domain.AccountTypeBusiness
				in.StoreName = ""
			},
			baseErr: ErrMissingStoreData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := customerInput()
			tt.mutate(&input)

			_, err := service.Signup(context.Background(), input)

			assert.ErrorIs(t, err, tt.baseErr)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewService(repo, testConfig())

	_, err := service.Signup(context.Background(), customerInput())
	assert.NoError(t, err)

	_, err = service.Signup(context.Background(), customerInput())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginAndValidateToken(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewService(repo, testConfig())

	_, err := service.Signup(context.Background(), customerInput())
	assert.NoError(t, err)

	t.Run("credenciais corretas emitem token válido", func(t *testing.T) {
		token, err := service.LoginUser(context.Background(), "maria.silva@example.com", "senha-forte")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, domain.AccountTypeCustomer, claims.UserAccountType)
	})

	t.Run("senha errada", func(t *testing.T) {
		_, err := service.LoginUser(context.Background(), "maria.silva@example.com", "senha-errada")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		_, err := service.LoginUser(context.Background(), "ninguem@example.com", "senha")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("token adulterado", func(t *testing.T) {
		_, err := service.ValidateToken("cabecalho.corpo.assinatura")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
