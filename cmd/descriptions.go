package cmd

const rootLongDescription = `Mistype plants realistic type annotation bugs in Python code. It locates
annotation sites (parameters, return types, annotated assignments), runs a
seeded coin flip per site and rewrites the selected annotations to types
that parse fine but are semantically wrong, or removes them entirely.

Only annotation bytes change; formatting, comments and code stay intact.
Runs are fully reproducible from the seed.

Supports path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./a ./b        scan multiple directories`

const listLongDescription = `List Python source files together with the number of annotation sites in
each, broken down by parameter, return and variable annotations. Nothing
is mutated.`

const runLongDescription = `Mutate type annotations in the selected files. Each mutated file gets an
artifact directory containing the rewritten source, a unified diff and a
metadata document describing every applied mutation.

The same seed, likelihood and inputs always reproduce the same bugs.`
