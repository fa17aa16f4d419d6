package repository

import "github.com/chcomputer/almacen-api/internal/domain/entity"

// UserWithBatchCount usuario con el número de lotes que ha registrado.
type UserWithBatchCount struct {
	User       entity.User
	BatchCount int
}

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List() ([]UserWithBatchCount, error)
	Update(user *entity.User) error
	Delete(id string) error
}
