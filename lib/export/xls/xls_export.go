package xlsexport

import (
	"bytes"

	dbmodels "employee-portal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportUserList(list []dbmodels.PortalUser) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var userHeaders = []string{"Email", "Full name", "Role", "Registered", "Added"}

const exportDateLayout = "02.01.2006 15:04"

func (i impl) ExportUserList(list []dbmodels.PortalUser) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close workbook")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, userHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		_, err = writeUserData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Users")
	return f.WriteToBuffer()
}

func writeUserData(f *excelize.File, sheet string, list []dbmodels.PortalUser, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(userHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Email"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Email); err != nil {
			return row, err
		}

		// "Full name"
		col++
		if err := writeColumn(f, sheet, col, row, item.FullName); err != nil {
			return row, err
		}

		// "Role"
		col++
		if err := writeColumn(f, sheet, col, row, item.Role.ToHuman()); err != nil {
			return row, err
		}

		// "Registered"
		col++
		registered := "no"
		if item.FirstLoginDone {
			registered = "yes"
		}
		if err := writeColumn(f, sheet, col, row, registered); err != nil {
			return row, err
		}

		// "Added"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format(exportDateLayout)); err != nil {
			return row, err
		}
	}
	return row, nil
}
