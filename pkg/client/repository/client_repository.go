package repository

import "github.com/lcorrigan704/client-management-system/entities"

type ClientRepository interface {
	Create(cl *entities.Client) error
	Get(id uint) (*entities.Client, error)
	List() ([]entities.Client, error)
	Update(cl *entities.Client) error
	Delete(id uint) error
}
