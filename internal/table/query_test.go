package table

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const people = "name;age;city\na;30;Oslo\nb;20;\nc;40;Bergen\n"

func names(res *Result) []any {
	out := make([]any, len(res.Data))
	for i, row := range res.Data {
		out[i] = row[0]
	}
	return out
}

func TestQuery_NoSpecPassesThrough(t *testing.T) {
	res, err := Query(strings.NewReader(people), ';', Spec{})
	require.NoError(t, err)
	require.Equal(t, []string{"name", "age", "city"}, res.Columns)
	require.Equal(t, []int{0, 1, 2}, res.Index)
	require.Equal(t, []any{"b", int64(20), nil}, res.Data[1])
}

func TestQuery_SortAscending(t *testing.T) {
	res, err := Query(strings.NewReader(people), ';', Spec{
		Sort: &SortSpec{Columns: []string{"age"}, Ascending: []bool{true}},
	})
	require.NoError(t, err)
	require.Equal(t, []any{"b", "a", "c"}, names(res))
	require.Equal(t, []int{1, 0, 2}, res.Index)
}

func TestQuery_SortDescendingNullsLast(t *testing.T) {
	res, err := Query(strings.NewReader(people), ';', Spec{
		Sort: &SortSpec{Columns: []string{"city"}, Ascending: []bool{false}},
	})
	require.NoError(t, err)
	require.Equal(t, []any{"a", "c", "b"}, names(res))
}

func TestQuery_SortMultiKeyStable(t *testing.T) {
	data := "g;v;id\nx;2;1\ny;1;2\nx;1;3\nx;2;4\n"
	res, err := Query(strings.NewReader(data), ';', Spec{
		Sort: &SortSpec{Columns: []string{"g", "v"}, Ascending: []bool{true, false}},
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 3, 2, 1}, res.Index)
}

func TestQuery_SortErrors(t *testing.T) {
	_, err := Query(strings.NewReader(people), ';', Spec{
		Sort: &SortSpec{Columns: []string{"age", "name"}, Ascending: []bool{true, false, true}},
	})
	require.Equal(t, KindInvalidSort, KindOf(err))
	require.Contains(t, err.Error(), "Length of ascending (3) != length of by (2)")

	_, err = Query(strings.NewReader(people), ';', Spec{
		Sort: &SortSpec{Columns: []string{"height"}},
	})
	require.Equal(t, KindUnknownColumn, KindOf(err))
}

func TestQuery_Filter(t *testing.T) {
	res, err := Query(strings.NewReader(people), ';', Spec{Filter: "age > 25"})
	require.NoError(t, err)
	require.Equal(t, []any{"a", "c"}, names(res))
	require.Equal(t, []int{0, 2}, res.Index)
}

func TestQuery_FilterUnknownColumn(t *testing.T) {
	_, err := Query(strings.NewReader(people), ';', Spec{Filter: "height > 10"})
	require.Error(t, err)
	require.Equal(t, KindUnknownColumn, KindOf(err))
	require.Contains(t, err.Error(), "name 'height' is not defined")
}

func TestQuery_FilterNullSemantics(t *testing.T) {
	res, err := Query(strings.NewReader(people), ';', Spec{Filter: "city == 'Oslo' or city > 'A'"})
	require.NoError(t, err)
	require.Equal(t, []any{"a", "c"}, names(res))

	res, err = Query(strings.NewReader(people), ';', Spec{Filter: "city != 'Oslo'"})
	require.NoError(t, err)
	require.Equal(t, []any{"b", "c"}, names(res))
}

func TestQuery_FilterTypeErrors(t *testing.T) {
	for _, f := range []string{"age > 'x'", "-name == 1", "name < 3"} {
		_, err := Query(strings.NewReader(people), ';', Spec{Filter: f})
		require.Equal(t, KindType, KindOf(err), f)
	}
	// Equality across types is allowed and simply never matches.
	res, err := Query(strings.NewReader(people), ';', Spec{Filter: "age == 'x'"})
	require.NoError(t, err)
	require.Empty(t, res.Data)
}

func TestQuery_FilterMustBeCondition(t *testing.T) {
	for _, f := range []string{"age", "age and name == 'a'", "not age", "(age > 1) == 1"} {
		_, err := Query(strings.NewReader(people), ';', Spec{Filter: f})
		require.Equal(t, KindSyntax, KindOf(err), f)
	}
}

func TestQuery_FilterAndSort(t *testing.T) {
	res, err := Query(strings.NewReader(people), ';', Spec{
		Filter: "20 < age <= 40 and not name == 'x'",
		Sort:   &SortSpec{Columns: []string{"age"}, Ascending: []bool{false}},
	})
	require.NoError(t, err)
	require.Equal(t, []any{"c", "a"}, names(res))
	require.Equal(t, []int{2, 0}, res.Index)
}

func TestQuery_SortTwoKeysCommaDelimited(t *testing.T) {
	data := "name,age\na,30\nb,20\nc,30\n"
	res, err := Query(strings.NewReader(data), ',', Spec{
		Sort: &SortSpec{Columns: []string{"age", "name"}, Ascending: []bool{true, true}},
	})
	require.NoError(t, err)
	require.Equal(t, []any{"b", "a", "c"}, names(res))
	require.Equal(t, []int{1, 0, 2}, res.Index)
	require.Equal(t, []any{"b", int64(20)}, res.Data[0])
}

func TestQuery_FilterKeepingAllRowsThenSort(t *testing.T) {
	data := "name;age\nd;5\ne;3\nf;5\ng;1\nh;3\n"
	res, err := Query(strings.NewReader(data), ';', Spec{
		Filter: "age >= 0",
		Sort:   &SortSpec{Columns: []string{"age"}},
	})
	require.NoError(t, err)
	require.Len(t, res.Data, 5)
	require.ElementsMatch(t, []int{0, 1, 2, 3, 4}, res.Index)
	for i := 1; i < len(res.Data); i++ {
		require.LessOrEqual(t, res.Data[i-1][1].(int64), res.Data[i][1].(int64), "row %d", i)
	}
	// Ties keep file order.
	require.Equal(t, []int{3, 1, 4, 0, 2}, res.Index)
}

func TestQuery_LargeIntegersCompareExactly(t *testing.T) {
	// Both values round to the same float64.
	data := "id;n\nx;9007199254740993\ny;9007199254740992\n"

	res, err := Query(strings.NewReader(data), ';', Spec{Sort: &SortSpec{Columns: []string{"n"}}})
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, res.Index)
	require.Equal(t, int64(9007199254740993), res.Data[1][1])

	res, err = Query(strings.NewReader(data), ';', Spec{Sort: &SortSpec{Columns: []string{"n"}, Ascending: []bool{false}}})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, res.Index)

	tests := []struct {
		filter string
		want   []any
	}{
		{"n > 9007199254740992", []any{"x"}},
		{"n == 9007199254740993", []any{"x"}},
		{"n == 9007199254740992", []any{"y"}},
		{"n != 9007199254740992", []any{"x"}},
		{"-n < -9007199254740992", []any{"x"}},
		{"n >= 9007199254740992.0", []any{"x", "y"}},
	}
	for _, tc := range tests {
		res, err := Query(strings.NewReader(data), ';', Spec{Filter: tc.filter})
		require.NoError(t, err, tc.filter)
		require.Equal(t, tc.want, names(res), tc.filter)
	}
}

func TestQuery_ValidatesBeforeFiltering(t *testing.T) {
	// A bad sort must fail even when the filter matches nothing.
	_, err := Query(strings.NewReader(people), ';', Spec{
		Filter: "age > 1000",
		Sort:   &SortSpec{Columns: []string{"nope"}},
	})
	require.Equal(t, KindUnknownColumn, KindOf(err))
}

func TestQuery_EmptyFile(t *testing.T) {
	res, err := Query(strings.NewReader(""), ';', Spec{})
	require.NoError(t, err)
	require.Empty(t, res.Columns)
	require.Empty(t, res.Data)
}

func TestResult_SplitJSON(t *testing.T) {
	res, err := Query(strings.NewReader("name;score\na;1.5\nb;\n"), ';', Spec{})
	require.NoError(t, err)

	out, err := json.Marshal(res)
	require.NoError(t, err)
	require.JSONEq(t, `{"columns":["name","score"],"index":[0,1],"data":[["a",1.5],["b",null]]}`, string(out))
}

func TestQuery_DoesNotModifyTable(t *testing.T) {
	tbl, err := Load(strings.NewReader(people), ';')
	require.NoError(t, err)
	_, err = tbl.Query(Spec{Sort: &SortSpec{Columns: []string{"age"}}})
	require.NoError(t, err)
	require.Equal(t, StringValue("a"), tbl.Rows[0][0])
}
