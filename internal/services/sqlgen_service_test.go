package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("Trims Whitespace", func(t *testing.T) {
		gateway := &stubGateway{response: "\n  SELECT name FROM spots\n  "}
		service := NewSQLGenService(gateway, testLogger())

		generated, err := service.Generate(context.Background(), "お寺が見たい")
		require.NoError(t, err)
		assert.Equal(t, "SELECT name FROM spots", generated)
	})

	t.Run("Prompt Carries Schema And Question", func(t *testing.T) {
		gateway := &stubGateway{response: "SELECT 1"}
		service := NewSQLGenService(gateway, testLogger())

		_, err := service.Generate(context.Background(), "只見線に乗りたい")
		require.NoError(t, err)

		assert.Contains(t, gateway.lastSystem, "spots(")
		assert.Contains(t, gateway.lastSystem, "stop_to_spot(")
		assert.Contains(t, gateway.lastSystem, "SELECT 文のみ")
		assert.Equal(t, "只見線に乗りたい", gateway.lastUser)
	})

	t.Run("Gateway Error Propagates", func(t *testing.T) {
		gateway := &stubGateway{err: fmt.Errorf("api returned status 429")}
		service := NewSQLGenService(gateway, testLogger())

		generated, err := service.Generate(context.Background(), "お寺")
		assert.Error(t, err)
		assert.Empty(t, generated)
		assert.Contains(t, err.Error(), "sql generation failed")
	})

	t.Run("Malformed Output Returned As Data", func(t *testing.T) {
		// Validation is the pipeline's job, not the generator's
		gateway := &stubGateway{response: "DROP TABLE spots;"}
		service := NewSQLGenService(gateway, testLogger())

		generated, err := service.Generate(context.Background(), "全部消して")
		require.NoError(t, err)
		assert.Equal(t, "DROP TABLE spots;", generated)
	})
}
