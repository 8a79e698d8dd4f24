// Package classifier defines the contract between gnnlimit and a graph
// classifier, plus a small trainable reference model and its training loop.
//
// Contract (Classifier):
//
//	NumClasses() int
//	Predict(*Batch) ([][]float64, error) // one distribution per graph
//
// A Batch stacks the node features of several graphs, carries a global edge
// index and a node→graph grouping (the usual mini-batching layout of graph
// learning libraries). Predict must not change model parameters; the probe
// relies on that to sweep a frozen model.
//
// Reference model (MeanPool):
//
//	h_v = [ x_v ‖ mean_{u∈N(v)} x_u ‖ Σ_{u∈N(v)} x_u ]   (fixed message passing)
//	r_G = mean_{v∈G} h_v                                  (mean readout)
//	P(y|G) = softmax(W r_G + b)                           (trainable head)
//
// Only W and b are trained (cross-entropy, plain SGD); the gradient of the
// head is closed-form, so no autodiff is needed. The mean channels converge
// as n grows while the sum channel tracks the average degree.
//
// Training (Trainer): epochs × shuffled mini-batches, History of loss and
// accuracy per epoch; Evaluate reports accuracy on held-out graphs.
package classifier
