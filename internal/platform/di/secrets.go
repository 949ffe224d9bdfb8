// internal/platform/di/secrets.go
package di

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// resolveSecret reads a Secret Manager payload. name accepts either a full
// resource name ("projects/.../secrets/.../versions/latest") or a bare
// secret id, which is expanded under projectID at version "latest".
func resolveSecret(ctx context.Context, sm *secretmanager.Client, projectID, name string) (string, error) {
	if sm == nil {
		return "", errors.New("di: secret manager client is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("di: secret name is empty")
	}
	if !strings.HasPrefix(name, "projects/") {
		if strings.TrimSpace(projectID) == "" {
			return "", errors.New("di: project id is empty for secret " + name)
		}
		name = "projects/" + projectID + "/secrets/" + name + "/versions/latest"
	}

	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("di: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("di: empty secret payload (" + name + ")")
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
