package dataset_test

import (
	"strings"
	"testing"

	"github.com/rpggio/mortality/internal/dataset"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Data As Of,Start Date,End Date,Group,Year,Month,State,Sex,Age Group ,COVID-19 Deaths,Total Deaths,Pneumonia Deaths,Pneumonia and COVID-19 Deaths,Influenza Deaths,"Pneumonia, Influenza, or COVID-19 Deaths",Footnote
09/27/2023,01/01/2020,09/23/2023,By Total,,,United States,All Sexes,All Ages,1000,20000,900,400,50,1550,
09/27/2023,01/01/2020,09/23/2023,By Total,,,United States,Male,65-74 years,300,4000,200,100,10,410,
09/27/2023,01/01/2020,09/23/2023,By Total,,,United States,Female,65-74 years,200,3500,150,80,,270,
09/27/2023,01/01/2020,09/23/2023,By Total,,,United States,Male,18-29 years,20,1500,10,5,2,27,
09/27/2023,01/01/2020,09/23/2023,By Total,,,United States,Female,18-29 years,,1200,8,,1,,One or more data cells have counts between 1-9
09/27/2023,01/01/2020,09/23/2023,By Total,,,Texas,Male,65-74 years,"1,250",9000,700,500,30,1480,
09/27/2023,01/01/2020,09/23/2023,By Total,,,Ohio,Female,65-74 years,800,7000,600,300,20,1120,
`

func loadSample(t *testing.T) []dataset.Row {
	t.Helper()
	rows, err := dataset.Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 7)
	return rows
}
