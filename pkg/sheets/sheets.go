package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Sink destino append-only donde se registran los votos. La implementación
// real escribe en una hoja de cálculo de Google; los tests usan un fake.
type Sink interface {
	// AppendRows agrega las filas al final de la hoja en una sola llamada
	AppendRows(ctx context.Context, rows [][]interface{}) error
	// ReadAllRows devuelve todas las filas de la hoja (incluye el encabezado)
	ReadAllRows(ctx context.Context) ([][]interface{}, error)
}

// SinkError error de escritura o lectura contra el sink externo.
// Nunca es fatal para la sesión del usuario: el caller registra el error
// y sigue con los datos locales.
type SinkError struct {
	Op  string
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s: %v", e.Op, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// Header encabezado de la hoja, en el orden que espera el dashboard
var Header = []interface{}{"Session ID", "Question Number", "User Vote", "Correct Answer", "Timestamp"}

// SheetsSink implementación de Sink sobre la API de Google Sheets
type SheetsSink struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsSink crea el cliente de Sheets con credenciales de cuenta de
// servicio. credentialsJSON es el contenido crudo del archivo de la cuenta.
func NewSheetsSink(ctx context.Context, credentialsJSON []byte, spreadsheetID, sheetName string) (*SheetsSink, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("error creando cliente de Sheets: %w", err)
	}

	return &SheetsSink{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// AppendRows agrega las filas al final de la hoja. Una sola llamada,
// sin reintentos: a lo sumo un intento por sesión completada.
func (s *SheetsSink) AppendRows(ctx context.Context, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	valueRange := &sheets.ValueRange{Values: rows}
	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName, valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return &SinkError{Op: "append", Err: err}
	}

	return nil
}

// ReadAllRows lee todas las filas de la hoja, encabezado incluido
func (s *SheetsSink) ReadAllRows(ctx context.Context) ([][]interface{}, error) {
	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, s.sheetName).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &SinkError{Op: "read", Err: err}
	}

	return resp.Values, nil
}
