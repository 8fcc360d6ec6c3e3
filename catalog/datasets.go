package catalog

import "fmt"

func init() {
	RegisterDataset(DatasetEntry{
		Name:       "cora",
		ImportCode: "from dgl.data import AsNodePredDataset, CoraGraphDataset",
		LoadCode: func(string) string {
			return "dataset = AsNodePredDataset(CoraGraphDataset())"
		},
	})

	RegisterDataset(DatasetEntry{
		Name:       "citeseer",
		ImportCode: "from dgl.data import AsNodePredDataset, CiteseerGraphDataset",
		LoadCode: func(string) string {
			return "dataset = AsNodePredDataset(CiteseerGraphDataset())"
		},
	})

	RegisterDataset(DatasetEntry{
		Name:       "pubmed",
		ImportCode: "from dgl.data import AsNodePredDataset, PubmedGraphDataset",
		LoadCode: func(string) string {
			return "dataset = AsNodePredDataset(PubmedGraphDataset())"
		},
	})

	RegisterDataset(DatasetEntry{
		Name: "csv",
		Params: []Param{
			{Name: "data_path", Default: "./", Doc: "Path to the directory holding the CSV dataset files"},
		},
		ImportCode: "from dgl.data import AsNodePredDataset, CSVDataset",
		LoadCode: func(bind string) string {
			return fmt.Sprintf("dataset = AsNodePredDataset(CSVDataset(%s))", bind)
		},
	})
}
