package playbook

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlaybook() *Playbook {
	return &Playbook{
		Name:        "Test Workflow",
		Description: "A workflow for tests",
		Author:      "tester",
		Created:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Category:    "reconnaissance",
		TargetType:  "network",
		Tags:        []string{"test"},
		Steps: []Step{
			{
				Command:         "nmap -sn {network}",
				Description:     "Discover hosts",
				ExpectedOutcome: "Live host list",
			},
			{
				Command:         "nmap -sV {target}",
				Description:     "Fingerprint services",
				ExpectedOutcome: "Service versions",
				Notes:           "Use hosts from step 1",
			},
		},
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "web_application_pentest", Slug("Web Application Pentest"))
	assert.Equal(t, "recon", Slug("recon"))
}

func TestManager_SaveAndLoadRoundTrip(t *testing.T) {
	m := NewManager(t.TempDir())
	p := samplePlaybook()

	require.NoError(t, m.Save(p))

	loaded, err := m.Load("Test Workflow")
	require.NoError(t, err)
	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, p.TargetType, loaded.TargetType)
	require.Len(t, loaded.Steps, 2)
	assert.Equal(t, "nmap -sn {network}", loaded.Steps[0].Command)
	assert.Nil(t, loaded.Steps[0].Success, "unreplayed steps carry no outcome")

	// Loading by slug works too
	_, err = m.Load("test_workflow")
	require.NoError(t, err)
}

func TestManager_SaveRejectsEmptyName(t *testing.T) {
	m := NewManager(t.TempDir())
	assert.Error(t, m.Save(&Playbook{}))
}

func TestManager_List(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, m.Save(samplePlaybook()))

	summaries, err := m.List()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "test_workflow", summaries[0].Slug)
	assert.Equal(t, "Test Workflow", summaries[0].Name)
	assert.Equal(t, 2, summaries[0].Steps)
}

func TestManager_InitDefaults(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, m.InitDefaults())

	web, err := m.Load("Web Application Pentest")
	require.NoError(t, err)
	assert.Len(t, web.Steps, 4)
	assert.Equal(t, "web-app", web.TargetType)

	recon, err := m.Load("Network Reconnaissance")
	require.NoError(t, err)
	assert.Len(t, recon.Steps, 4)

	// Re-running must not clobber operator edits
	web.Description = "edited"
	require.NoError(t, m.Save(web))
	require.NoError(t, m.InitDefaults())

	again, err := m.Load("Web Application Pentest")
	require.NoError(t, err)
	assert.Equal(t, "edited", again.Description)
}

func TestManager_DeleteMissing(t *testing.T) {
	m := NewManager(t.TempDir())
	assert.Error(t, m.Delete("nope"))
}

func TestPlaybook_Markdown(t *testing.T) {
	p := samplePlaybook()
	md := p.Markdown()

	assert.Contains(t, md, "# Test Workflow")
	assert.Contains(t, md, "**Author:** tester")
	assert.Contains(t, md, "### Step 1: Discover hosts")
	assert.Contains(t, md, "```bash\nnmap -sn {network}\n```")
	assert.Contains(t, md, "**Notes:** Use hosts from step 1")
}

func TestManager_ExportMarkdown(t *testing.T) {
	m := NewManager(t.TempDir())
	p := samplePlaybook()
	path := filepath.Join(t.TempDir(), "workflow.md")

	require.NoError(t, m.ExportMarkdown(p, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Test Workflow")
}
