package archive

import "github.com/callsheet/mentions-bot/internal/models"

// Archive persists scan reports outside the database so runs can be
// audited and replayed.
type Archive interface {
	StoreReport(report *models.Report) error
	Retrieve(name string) ([]byte, error)
	List(prefix string) ([]string, error)
	Delete(name string) error
}
