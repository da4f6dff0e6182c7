/*
Package ngram builds word n-gram models from a token sequence and generates
sentences from them by proportional sampling.

A Model maps every observed context of n consecutive words to a
FrequencyTable of the words that followed it. Models are built once with
Train and are read-only afterwards, so a single Model can serve any number of
concurrent Generate or GenerateStream calls.

Randomness is always supplied through a Source. Pass WithSource(NewSource(seed))
for reproducible output; without it every call seeds its own generator.

Contexts never seen during training are not smoothed. Generation appends the
Terminator "." and stops, which is also what an empty FrequencyTable returns.
*/
package ngram
