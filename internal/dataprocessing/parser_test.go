package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "ordercli/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseOrdersCSV(t *testing.T) {
	path := writeTempCSV(t, `order_id,user_id,amount,status,order_date,quantity
o1,u1,120.50,PAID,2024-03-01,2
o2,u2,,pending,2024-03-02,1

o3,u3,75.00,Refunded,2024-03-03,
`)

	orders, err := ParseOrdersCSV(path)
	require.NoError(t, err)
	require.Len(t, orders, 3) // blank line skipped

	assert.Equal(t, "o1", orders[0].OrderID)
	assert.Equal(t, "u1", orders[0].UserID)
	assert.Equal(t, "120.50", orders[0].Amount)
	assert.Equal(t, "PAID", orders[0].Status)
	assert.Equal(t, "2024-03-01", orders[0].OrderDate)
	assert.Equal(t, "2", orders[0].Quantity)

	// Cells stay raw strings; the blank amount survives to the cleaner.
	assert.Equal(t, "", orders[1].Amount)
	assert.Equal(t, "", orders[2].Quantity)
}

func TestParseOrdersCSV_CreatedAtAlias(t *testing.T) {
	path := writeTempCSV(t, "order_id,user_id,amount,status,created_at\no1,u1,10,paid,2024-01-05\n")

	orders, err := ParseOrdersCSV(path)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "2024-01-05", orders[0].OrderDate)
}

func TestParseOrdersCSV_ColumnOrderIrrelevant(t *testing.T) {
	path := writeTempCSV(t, "Status,AMOUNT,order_date,extra,user_id,order_id\npaid,9.99,2024-01-01,x,u9,o9\n")

	orders, err := ParseOrdersCSV(path)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o9", orders[0].OrderID)
	assert.Equal(t, "9.99", orders[0].Amount)
}

func TestParseOrdersCSV_BOMHeader(t *testing.T) {
	path := writeTempCSV(t, "\uFEFForder_id,user_id,amount,status,order_date\no1,u1,5,paid,2024-01-01\n")

	orders, err := ParseOrdersCSV(path)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestParseOrdersCSV_MissingColumn(t *testing.T) {
	path := writeTempCSV(t, "order_id,user_id,status,order_date\no1,u1,paid,2024-01-01\n")

	_, err := ParseOrdersCSV(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
	assert.Contains(t, err.Error(), "amount")
}

func TestParseOrdersCSV_UnreadableFile(t *testing.T) {
	_, err := ParseOrdersCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestParseOrdersCSV_HeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "order_id,user_id,amount,status,order_date\n")

	orders, err := ParseOrdersCSV(path)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestParseUsersCSV(t *testing.T) {
	path := writeTempCSV(t, "user_id,country\nu1,iq\nu2,DE\n")

	users, err := ParseUsersCSV(path)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "IQ", users[0].Country) // country codes normalized upper
	assert.Equal(t, "DE", users[1].Country)
}

func TestParseUsersCSV_MissingColumn(t *testing.T) {
	path := writeTempCSV(t, "user_id,name\nu1,someone\n")

	_, err := ParseUsersCSV(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
	assert.Contains(t, err.Error(), "country")
}

func TestParseOrdersXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Orders")
	require.NoError(t, err)

	// Title row above the header, as back-office exports tend to have.
	require.NoError(t, f.SetSheetRow("Orders", "A1", &[]interface{}{"Monthly orders export"}))
	require.NoError(t, f.SetSheetRow("Orders", "A2", &[]interface{}{"order_id", "user_id", "amount", "status", "order_date"}))
	require.NoError(t, f.SetSheetRow("Orders", "A3", &[]interface{}{"o1", "u1", "42.00", "paid", "2024-02-01"}))
	require.NoError(t, f.SetSheetRow("Orders", "A4", &[]interface{}{"o2", "u2", "13.37", "Pending", "2024-02-02"}))

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, f.SaveAs(path))

	orders, err := ParseOrdersXLSX(path)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].OrderID)
	assert.Equal(t, "42.00", orders[0].Amount)
	assert.Equal(t, "Pending", orders[1].Status)
}

func TestParseOrdersXLSX_NoOrdersSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"totally", "unrelated"}))

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err := ParseOrdersXLSX(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
}
