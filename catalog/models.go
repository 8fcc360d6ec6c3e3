package catalog

func init() {
	RegisterModel(ModelEntry{
		Name:       "gcn",
		ClassName:  "GCN",
		SourceCode: gcnSource,
		Params: []Param{
			{Name: "embed_size", Default: -1, Doc: "The dimension of created embedding table. -1 means using original node embedding"},
			{Name: "hidden_size", Default: 16, Doc: "Hidden layer size"},
			{Name: "num_layers", Default: 1, Doc: "Number of hidden layers"},
			{Name: "norm", Default: "both", Doc: "GCN normalization type, can be both, right or none"},
			{Name: "activation", Default: "relu", Doc: "Activation function name under torch.nn.functional"},
			{Name: "dropout", Default: 0.5, Doc: "Dropout rate"},
		},
	})

	RegisterModel(ModelEntry{
		Name:       "sage",
		ClassName:  "GraphSAGE",
		SourceCode: sageSource,
		Params: []Param{
			{Name: "embed_size", Default: -1, Doc: "The dimension of created embedding table. -1 means using original node embedding"},
			{Name: "hidden_size", Default: 16, Doc: "Hidden layer size"},
			{Name: "num_layers", Default: 1, Doc: "Number of hidden layers"},
			{Name: "aggregator_type", Default: "gcn", Doc: "Aggregator type to use, can be mean, gcn, pool or lstm"},
			{Name: "activation", Default: "relu", Doc: "Activation function name under torch.nn.functional"},
			{Name: "dropout", Default: 0.5, Doc: "Dropout rate"},
		},
	})

	RegisterModel(ModelEntry{
		Name:       "gat",
		ClassName:  "GAT",
		SourceCode: gatSource,
		Params: []Param{
			{Name: "embed_size", Default: -1, Doc: "The dimension of created embedding table. -1 means using original node embedding"},
			{Name: "hidden_size", Default: 8, Doc: "Hidden layer size"},
			{Name: "num_layers", Default: 1, Doc: "Number of hidden layers"},
			{Name: "num_heads", Default: 8, Doc: "Number of attention heads"},
			{Name: "feat_drop", Default: 0.6, Doc: "Dropout rate on feature"},
			{Name: "attn_drop", Default: 0.6, Doc: "Dropout rate on attention weight"},
		},
	})
}

const gcnSource = `import torch
import torch.nn as nn
import torch.nn.functional as F
import dgl.nn as dglnn


class GCN(nn.Module):
    def __init__(self,
                 in_size,
                 out_size,
                 embed_size=-1,
                 hidden_size=16,
                 num_layers=1,
                 norm="both",
                 activation="relu",
                 dropout=0.5):
        super().__init__()
        self.out_size = out_size
        if embed_size > 0:
            self.embed = nn.Embedding(in_size, embed_size)
            in_size = embed_size
        else:
            self.embed = None
        self.layers = nn.ModuleList()
        for i in range(num_layers):
            in_hidden = hidden_size if i > 0 else in_size
            out_hidden = hidden_size if i < num_layers - 1 else out_size
            self.layers.append(dglnn.GraphConv(in_hidden, out_hidden, norm=norm))
        self.dropout = nn.Dropout(dropout)
        self.act = getattr(F, activation)

    def forward(self, g, node_feat, edge_feat=None):
        if self.embed is not None:
            h = self.embed.weight
        else:
            h = node_feat
        for i, layer in enumerate(self.layers):
            h = layer(g, h)
            if i != len(self.layers) - 1:
                h = self.act(h)
                h = self.dropout(h)
        return h
`

const sageSource = `import torch
import torch.nn as nn
import torch.nn.functional as F
import dgl.nn as dglnn


class GraphSAGE(nn.Module):
    def __init__(self,
                 in_size,
                 out_size,
                 embed_size=-1,
                 hidden_size=16,
                 num_layers=1,
                 aggregator_type="gcn",
                 activation="relu",
                 dropout=0.5):
        super().__init__()
        self.out_size = out_size
        if embed_size > 0:
            self.embed = nn.Embedding(in_size, embed_size)
            in_size = embed_size
        else:
            self.embed = None
        self.layers = nn.ModuleList()
        for i in range(num_layers):
            in_hidden = hidden_size if i > 0 else in_size
            out_hidden = hidden_size if i < num_layers - 1 else out_size
            self.layers.append(
                dglnn.SAGEConv(in_hidden, out_hidden, aggregator_type))
        self.dropout = nn.Dropout(dropout)
        self.act = getattr(F, activation)

    def forward(self, g, node_feat, edge_feat=None):
        if self.embed is not None:
            h = self.embed.weight
        else:
            h = node_feat
        for i, layer in enumerate(self.layers):
            h = layer(g, h)
            if i != len(self.layers) - 1:
                h = self.act(h)
                h = self.dropout(h)
        return h
`

const gatSource = `import torch
import torch.nn as nn
import torch.nn.functional as F
import dgl.nn as dglnn


class GAT(nn.Module):
    def __init__(self,
                 in_size,
                 out_size,
                 embed_size=-1,
                 hidden_size=8,
                 num_layers=1,
                 num_heads=8,
                 feat_drop=0.6,
                 attn_drop=0.6):
        super().__init__()
        self.out_size = out_size
        if embed_size > 0:
            self.embed = nn.Embedding(in_size, embed_size)
            in_size = embed_size
        else:
            self.embed = None
        self.layers = nn.ModuleList()
        for i in range(num_layers):
            in_hidden = hidden_size * num_heads if i > 0 else in_size
            out_hidden = hidden_size if i < num_layers - 1 else out_size
            heads = num_heads if i < num_layers - 1 else 1
            self.layers.append(
                dglnn.GATConv(in_hidden, out_hidden, heads,
                              feat_drop=feat_drop, attn_drop=attn_drop))

    def forward(self, g, node_feat, edge_feat=None):
        if self.embed is not None:
            h = self.embed.weight
        else:
            h = node_feat
        for i, layer in enumerate(self.layers):
            h = layer(g, h)
            if i != len(self.layers) - 1:
                h = F.elu(h.flatten(1))
            else:
                h = h.mean(1)
        return h
`
