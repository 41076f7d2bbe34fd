package archive

import (
	"fmt"

	"github.com/callsheet/mentions-bot/internal/models"
	"github.com/sirupsen/logrus"
)

// NoopArchive discards reports. Used when no storage account is
// configured so the bot still runs without Azure.
type NoopArchive struct{}

var _ Archive = (*NoopArchive)(nil)

// NewNoopArchive returns an archive that keeps nothing.
func NewNoopArchive() *NoopArchive {
	return &NoopArchive{}
}

func (n *NoopArchive) StoreReport(report *models.Report) error {
	logrus.Debugf("Archive disabled, dropping %s report with %d matches", report.Period, report.TotalMatches)
	return nil
}

func (n *NoopArchive) Retrieve(name string) ([]byte, error) {
	return nil, fmt.Errorf("archive disabled: no report %q", name)
}

func (n *NoopArchive) List(prefix string) ([]string, error) {
	return nil, nil
}

func (n *NoopArchive) Delete(name string) error {
	return nil
}
