package portalusershandler

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	portaluserstore "employee-portal-backend/lib/portal-users/store"
	"employee-portal-backend/models"
	usersapimodels "employee-portal-backend/models/api/users"
	dbmodels "employee-portal-backend/models/db"

	"github.com/asaskevich/govalidator"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var bulkHeader = []string{"email", "fullname", "role"}

// BulkImport upserts roster records from a CSV or XLSX file. The header
// row must carry exactly the columns email, fullname and role. Rows that
// fail validation are skipped without failing the whole file; the result
// counts the rows that made it in.
func (i impl) BulkImport(fileName string, data []byte) (usersapimodels.BulkImportResult, error) {
	if len(data) == 0 {
		return usersapimodels.BulkImportResult{}, models.NewInvalidArgument("file is empty")
	}
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		rows, err = readCSVRows(data)
	case ".xlsx":
		rows, err = readXLSXRows(data)
	default:
		return usersapimodels.BulkImportResult{}, models.NewInvalidArgument("unsupported file format, expected CSV or XLSX")
	}
	if err != nil {
		return usersapimodels.BulkImportResult{}, err
	}
	if len(rows) == 0 {
		return usersapimodels.BulkImportResult{}, models.NewInvalidArgument("file is empty")
	}
	if !headerMatches(rows[0]) {
		return usersapimodels.BulkImportResult{}, models.NewInvalidArgument("file header must be exactly: email, fullname, role")
	}

	logger := i.GetLogger("")
	added := 0
	// One transaction for the whole file: the reported count must match
	// what is actually stored, so a failed row rolls everything back.
	err = i.db.Transaction(func(tx *gorm.DB) error {
		store := portaluserstore.NewInstance(tx)
		for _, row := range rows[1:] {
			email, fullName, role, ok := parseRosterRow(row)
			if !ok {
				continue
			}
			if err := upsertRosterRecord(store, email, fullName, role); err != nil {
				logger.WithError(err).WithField("email", email).Error("bulk import row failed")
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return usersapimodels.BulkImportResult{}, err
	}
	return usersapimodels.BulkImportResult{Added: added}, nil
}

func readCSVRows(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows := [][]string{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, models.NewInvalidArgument("file is not valid CSV")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readXLSXRows(data []byte) ([][]string, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, models.NewInvalidArgument("file is not a valid XLSX workbook")
	}
	defer book.Close()
	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, models.NewInvalidArgument("workbook has no sheets")
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, models.NewInvalidArgument("workbook sheet is unreadable")
	}
	return rows, nil
}

func headerMatches(header []string) bool {
	if len(header) != len(bulkHeader) {
		return false
	}
	for idx, want := range bulkHeader {
		if strings.ToLower(strings.TrimSpace(header[idx])) != want {
			return false
		}
	}
	return true
}

// parseRosterRow validates one data row, ok=false means skip it.
func parseRosterRow(row []string) (email, fullName string, role models.UserRole, ok bool) {
	if len(row) != len(bulkHeader) {
		return "", "", "", false
	}
	email = strings.ToLower(strings.TrimSpace(row[0]))
	fullName = strings.TrimSpace(row[1])
	role = models.UserRole(strings.ToLower(strings.TrimSpace(row[2])))
	if !govalidator.IsEmail(email) || fullName == "" || !role.IsValid() {
		return "", "", "", false
	}
	return email, fullName, role, true
}

// upsertRosterRecord overwrites an existing record unconditionally, bulk
// files are the source of truth for the roster.
func upsertRosterRecord(store portaluserstore.Provider, email, fullName string, role models.UserRole) error {
	existing, err := store.FindByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return store.Update(existing.ID, map[string]interface{}{
			"full_name": fullName,
			"role":      role,
		})
	}
	_, err = store.Create(dbmodels.PortalUser{
		Email:    email,
		FullName: fullName,
		Role:     role,
	})
	return err
}
