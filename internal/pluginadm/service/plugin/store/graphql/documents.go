package graphql

// Operation documents sent to the site's GraphQL API.
const (
	getPluginQuery = `
query GetGatsbyPlugin($id: String!) {
  gatsbyPlugin(id: $id) {
    name
    description
    options
  }
}`

	updatePluginMutation = `
mutation updateGatsbyPlugin($name: String!, $options: JSONObject) {
  updateGatsbyPlugin(gatsbyPlugin: {
    name: $name,
    id: $name,
    options: $options
  }) {
    id
    name
    options
  }
}`

	// destroyPluginMutation removes the production dependency and the plugin
	// record in one request.
	destroyPluginMutation = `
mutation destroyGatsbyPlugin($name: String!) {
  destroyNpmPackage(npmPackage: {
    name: $name,
    id: $name,
    dependencyType: "production"
  }) {
    id
    name
  }
  destroyGatsbyPlugin(gatsbyPlugin: {
    name: $name,
    id: $name
  }) {
    id
    name
  }
}`

	createPluginMutation = `
mutation createGatsbyPlugin($name: String!) {
  createGatsbyPlugin(gatsbyPlugin: {
    id: $name,
    name: $name
  }) {
    id
    name
    description
    options
    readme
  }
}`
)
