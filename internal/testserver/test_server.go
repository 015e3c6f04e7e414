package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/mortality/internal/dataset"
	"github.com/rpggio/mortality/internal/domain/comparison"
	"github.com/rpggio/mortality/internal/mcp"
	"github.com/rpggio/mortality/internal/report"
	"github.com/rpggio/mortality/internal/sqlite"
	"github.com/rpggio/mortality/internal/transport"
	"github.com/stretchr/testify/require"
)

// SampleCSV is a small extract shaped like the provisional deaths dataset.
const SampleCSV = `Data As Of,State,Sex,Age Group,COVID-19 Deaths,Total Deaths,Pneumonia Deaths,"Pneumonia and COVID-19 Deaths",Influenza Deaths,"Pneumonia, Influenza, or COVID-19 Deaths"
09/27/2023,United States,All Sexes,All Ages,"1,800","200,000","3,000",700,50,"4,150"
09/27/2023,United States,Male,All Ages,"1,000","100,000","1,600",400,30,"2,230"
09/27/2023,United States,Female,All Ages,800,"100,000","1,400",300,20,"1,920"
09/27/2023,United States,All Sexes,18-29 years,100,"30,000",300,40,5,365
09/27/2023,United States,All Sexes,65-74 years,900,"40,000","1,500",350,25,"2,075"
09/27/2023,United States,All Sexes,85 years and over,,"20,000",900,,,
09/27/2023,Texas,All Sexes,All Ages,200,"15,000",400,90,4,514
`

// TestServer is an MCP server over HTTP backed by an in-memory history store.
type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Rows    []dataset.Row
	Service *comparison.Service
}

// New starts a server over SampleCSV. It is closed when the test ends.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	rows, err := dataset.Read(strings.NewReader(SampleCSV))
	require.NoError(t, err)

	svc := comparison.NewService(sqlite.NewComparisonRepository(db), nil, comparison.WithSource("sample.csv"))
	server := mcp.NewServer(mcp.Config{
		Comparisons:   svc,
		Rows:          rows,
		ReportOptions: report.DefaultOptions(),
		Version:       "test",
	})
	httpServer := httptest.NewServer(transport.NewHandler(server, 0))

	ts := &TestServer{
		Server:  httpServer,
		DB:      db,
		Rows:    rows,
		Service: svc,
	}

	t.Cleanup(func() {
		httpServer.Close()
		_ = db.Close()
	})

	return ts
}

// Connect opens a client session against the streamable endpoint.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL + "/mcp",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}
