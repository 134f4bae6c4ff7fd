package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lessonforge/lessonforge/pkg/migrate"
)

// migrateRegistry adapts the injected interaction registry to the narrow
// lookup the migration pipeline needs.
type migrateRegistry struct {
	caps *Capabilities
}

func (r migrateRegistry) IsTerminal(id string) (bool, error) {
	if r.caps == nil || r.caps.Interactions == nil {
		return false, fmt.Errorf("no interaction registry configured")
	}
	spec, err := r.caps.Interactions.InteractionByID(id)
	if err != nil {
		return false, err
	}
	return spec.IsTerminal(), nil
}

func unmarshalDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, Validationf(
			"please ensure that you are uploading a YAML text file, not a zip file. The YAML parser returned the following error: %v", err)
	}
	return doc, nil
}

// FromYAML deserializes a titled exploration document (schema version 10 or
// later), migrating it to the current schema on the way in. Documents from
// the untitled era must go through FromUntitledYAML instead.
func FromYAML(caps *Capabilities, id string, data []byte) (*Exploration, error) {
	doc, err := unmarshalDocument(data)
	if err != nil {
		return nil, err
	}
	if version, err := declaredVersion(doc); err != nil {
		return nil, err
	} else if version <= migrate.LastUntitledSchemaVersion {
		return nil, Validationf(
			"expected a YAML version >= %d, received: %d",
			migrate.LastUntitledSchemaVersion+1, version)
	}
	migrated, _, err := migrate.ToCurrent(doc, migrateRegistry{caps}, "", "")
	if err != nil {
		return nil, err
	}
	migrated["id"] = id
	return NewExplorationFromDict(caps, migrated)
}

// FromUntitledYAML deserializes an exploration document from the era when
// title and category lived outside the serialized blob (schema version 9 or
// earlier); both are supplied by the caller and embedded during migration.
func FromUntitledYAML(caps *Capabilities, id, title, category string, data []byte) (*Exploration, error) {
	doc, err := unmarshalDocument(data)
	if err != nil {
		return nil, err
	}
	if version, err := declaredVersion(doc); err != nil {
		return nil, err
	} else if version > migrate.LastUntitledSchemaVersion {
		return nil, Validationf(
			"expected a YAML version <= %d, received: %d",
			migrate.LastUntitledSchemaVersion, version)
	}
	migrated, _, err := migrate.ToCurrent(doc, migrateRegistry{caps}, title, category)
	if err != nil {
		return nil, err
	}
	migrated["id"] = id
	return NewExplorationFromDict(caps, migrated)
}

func declaredVersion(doc map[string]any) (int, error) {
	version, err := intAt(doc, "schema_version")
	if err != nil {
		return 0, Validationf("invalid document: no schema version specified")
	}
	return version, nil
}

// ToYAML serializes the exploration at the current schema version. The id is
// not part of the serialized form.
func (e *Exploration) ToYAML(caps *Capabilities) ([]byte, error) {
	d := e.ToDict(caps)
	delete(d, "id")
	d["schema_version"] = migrate.CurrentSchemaVersion
	return yaml.Marshal(d)
}
