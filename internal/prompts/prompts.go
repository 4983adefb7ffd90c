package prompts

import (
	"fmt"
	"sort"
	"strings"
)

// instructionNotes constrain the analysis agent. The traced application is
// fixed; only file system tuning is on the table.
const instructionNotes = `
Remember:
 - The application code cannot be changed. Focus only on information that can help tune the file system parameters to improve performance of the application as it is currently written.
 - DO NOT RUN COMMANDS TO CHANGE THE FILE SYSTEM PARAMETERS. That is handled later by the user after reviewing your analysis.
 - DO NOT SUGGEST ANY SPECIFIC COMMANDS TO RUN. The user is already an expert in implementing file system configuration changes.
 - DO NOT CREATE ANY PLOTS OR GRAPHS.
 - Keep these instructions as part of your plan so you do not forget them later in the analysis process.`

const environmentContext = `
### Environment Setup

The Darshan log has been processed into this directory: each recorded Darshan module became one CSV data file and one description text file. A module's description explains the data columns in its CSV and how to interpret them. The file header.txt holds the information from the start of the Darshan log (application runtime, number of processes, and so on).

Start by running this code here to load the data:

` + "```python\n%s\n```\n"

// Analysis builds the prompt that drives the main analysis session.
// tuning optionally names the file system parameters being tuned.
func Analysis(modules []string, setupCode string, tuning map[string]string) string {
	var b strings.Builder
	b.WriteString("Here is some context before I give you the task:\n")

	if len(tuning) > 0 {
		b.WriteString("\n### Tuning Configuration\n\nI am trying to tune these file system parameters to achieve maximal performance on my HPC application:\n\n")
		b.WriteString(renderTuning(tuning))
	}

	fmt.Fprintf(&b, "\n### Darshan Modules\n\nIn order to decide which parameters to tune and how to tune them, I have run the application and traced its I/O behavior using Darshan. The application used these Darshan modules: %s.\n", strings.Join(modules, ", "))

	fmt.Fprintf(&b, environmentContext, setupCode)

	b.WriteString(`
### Task

 1) Inspect the dataframes and description variables to understand the data columns and what they represent.
 2) Then, find which unique directories are accessed by the application.
 3) Then, analyze the data from the Darshan log to extract the most important information that may help guide file system parameter tuning to improve performance of the application.
`)
	b.WriteString(instructionNotes)
	return b.String()
}

// Summary builds the prompt that condenses a full analysis transcript.
func Summary(transcript string) string {
	return fmt.Sprintf(`A user asked an assistant to analyze a Darshan log and extract any knowledge that may help tune file system parameters to improve the performance of the traced application. The analysis transcript below starts with the task given to the assistant, followed by the assistant's plan, the analysis code it ran, and its interpretation of the results.

Here is the full transcript of the analysis:

%s

### Task

Review the analysis above and generate a detailed summary of everything the assistant discovered about the application's I/O behavior. Include the specific findings that may be helpful for tuning file system parameters to improve the application's performance.
`, transcript)
}

// QA builds the prompt for a follow-up question. When fresh is true the agent
// is working in a newly loaded environment and gets the setup context first.
func QA(question, setupCode string, fresh bool) string {
	if fresh && setupCode != "" {
		return fmt.Sprintf(`This directory holds a processed Darshan I/O profiling log: each recorded Darshan module became one CSV data file and one description text file explaining its columns. The file header.txt holds the information from the start of the Darshan log.

Start by running this code here to load the data:

`+"```python\n%s\n```"+`

Then answer the following question about the Darshan log data:

%s
`, setupCode, question)
	}
	return fmt.Sprintf("Please answer the following question about the Darshan log data:\n\n%s\n", question)
}

// renderTuning formats the tuning parameters deterministically, sorted by name.
func renderTuning(tuning map[string]string) string {
	names := make([]string, 0, len(tuning))
	for name := range tuning {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, " - %s: %s\n", name, tuning[name])
	}
	return b.String()
}
