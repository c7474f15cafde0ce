package checkout

import (
	"errors"

	"invoicepay/database/repository"
	"invoicepay/utils"
)

func classifyLookup(err error, notFoundMsg, failedMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound(notFoundMsg, err)
	}
	return utils.PersistenceError(failedMsg, err)
}
