package mcp

const serverInstructions = `mortality runs pooled two-proportion z-tests over the provisional COVID-19 deaths by sex and age table.

Tools:
- proportion_ztest: test two groups given raw counts (event_a/total_a vs event_b/total_b).
- compare_groups: select rows for each group (states, sexes, age_groups and their exclude_ lists), sum the event and total measures, and test them.
- dataset_report: descriptive tables (totals by sex, age group, state; correlations; quartiles) for the loaded file. Use it to discover valid category values.
- list_comparisons / get_comparison: recorded results, newest first (requires a history database).

Measures are named as in the CSV header, e.g. "COVID-19 Deaths", "Total Deaths", "Pneumonia Deaths".
Defaults: event "COVID-19 Deaths", total "Total Deaths", alpha 0.05. The p-value is two-tailed.
`
