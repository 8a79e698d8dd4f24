// Package label turns a sampled graph into a class index.
//
// Two generation modes exist (Mode):
//
//   - ModeParity: label = 1 iff n is even. A pure function of the size, used
//     as a task no size-agnostic classifier can learn.
//   - ModeAverageDegree: compares the observed average degree against the
//     G(n,p) distribution of the degree sum.
//     Without split thresholds it is a 2-class rule, label = 1 iff
//     AverageDegree ≥ (n-1)·p.
//     With split thresholds (q1,q2) it is a 3-class quantile rule: two integer
//     cut points c1 ≤ c2 on the degree-sum distribution are chosen so that
//     CDF(c1) ≈ q1 and CDF(c2) ≈ q2, and
//
//     label = 0 if DegreeSum ≤ c1, 1 if c1 < DegreeSum ≤ c2, 2 otherwise
//
//     (equivalently AverageDegree compared against c1/n and c2/n).
//
// Cut points are found by scanning integer candidates upward and keeping the
// one whose CDF is numerically closest to the target; ties go to the larger
// candidate. The binomial CDF comes from gonum's stat/distuv.
//
// DegreeSumModel selects the distribution the cuts are computed on:
// SumOfPairs (default) uses the exact law 2·Binomial(n(n-1)/2, p);
// OrderedPairs uses Binomial(n(n-1), p), i.e. one trial per ordered pair.
package label
